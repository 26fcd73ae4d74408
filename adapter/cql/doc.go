// Package cql defines the driver-neutral session, query, and iterator
// interfaces the registrar access layer is written against.
//
// The gocql subpackage provides the production adapter over
// github.com/gocql/gocql. Tests substitute hand-rolled mocks.
//
// The surface is intentionally narrow: only the operations the access layer
// issues are present (plain execution, single-row scans, iteration, and
// map-scanned lightweight transactions). Batches are absent because every
// write in the system is a single conditional statement.
package cql
