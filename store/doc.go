// Package store owns the single shared session to the CQL store and the
// low-level execution primitives every table module is built on.
//
// # Execution model
//
// Three primitives cover the whole system:
//
//   - Conn.Exec: one-off statements (schema DDL)
//   - Conn.ExecCAS: conditional writes (IF [NOT] EXISTS), with the mandatory
//     lightweight-transaction applied-flag check that turns a rejected
//     condition into NOT_APPLIED
//   - Conn.SelectRows: row streaming with a capacity hint and per-row
//     callback, where zero rows yield NOT_FOUND
//
// Each call performs one network round-trip and blocks the calling
// goroutine until the store responds. There is no statement batching and no
// caller-side cancellation beyond the passed context.
//
// # Failure semantics
//
// Driver errors never escape this package as raw errors; MapError
// classifies them into the closed types.Code set. Retries are off by
// default (every transient failure surfaces immediately); WithRetryPolicy
// enables exponential backoff for transient codes only.
package store
