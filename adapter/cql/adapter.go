// Package cql provides driver-neutral CQL session interfaces.
package cql

import (
	"context"

	"github.com/arloliu/registrar/types"
)

// Consistency is a convenience alias - re-exported from the types package.
type Consistency = types.Consistency

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Session represents a raw CQL session from the underlying driver.
//
// The interface is the narrow surface the access layer actually uses; it
// exists so the store package can be tested against hand-rolled mocks and so
// the driver can be swapped without touching callers.
type Session interface {
	// Query creates a new query for the given statement.
	//
	// Parameters:
	//   - stmt: CQL statement with ? placeholders
	//   - values: Values to bind to placeholders
	//
	// Returns:
	//   - Query: A query builder
	Query(stmt string, values ...any) Query

	// Close terminates the session.
	Close()
}

// Query represents a raw CQL query from the underlying driver.
type Query interface {
	// WithContext associates a context with the query.
	WithContext(ctx context.Context) Query

	// Consistency sets the consistency level.
	Consistency(c Consistency) Query

	// SerialConsistency sets the consistency level for the serial phase of
	// CAS operations. Valid values are Serial or LocalSerial.
	SerialConsistency(c Consistency) Query

	// PageSize sets the page size.
	PageSize(n int) Query

	// Exec executes the query without reading rows back.
	Exec() error

	// ExecContext executes the query with context.
	ExecContext(ctx context.Context) error

	// Scan executes and scans a single row.
	Scan(dest ...any) error

	// ScanContext executes and scans a single row with context.
	ScanContext(ctx context.Context, dest ...any) error

	// Iter returns an iterator for results.
	Iter() Iter

	// IterContext returns an iterator for results with context.
	IterContext(ctx context.Context) Iter

	// MapScanCAS executes a lightweight transaction and scans the previous
	// values into a map when the condition did not hold.
	// Returns applied=true if the transaction succeeded.
	MapScanCAS(dest map[string]any) (applied bool, err error)

	// MapScanCASContext executes a lightweight transaction with context.
	MapScanCASContext(ctx context.Context, dest map[string]any) (applied bool, err error)

	// Statement returns the CQL statement.
	Statement() string
}

// Iter represents a raw CQL iterator from the underlying driver.
type Iter interface {
	// Scan reads the next row.
	Scan(dest ...any) bool

	// Close closes the iterator and returns any error.
	Close() error

	// NumRows returns the number of rows in the current page.
	NumRows() int

	// Scanner returns a database/sql-style scanner for the iterator.
	Scanner() Scanner
}

// Scanner provides database/sql-style row scanning.
type Scanner interface {
	// Next advances to the next row, returning true if a row is available.
	Next() bool

	// Scan reads the current row into dest.
	Scan(dest ...any) error

	// Err returns any error from iteration and releases resources.
	Err() error
}
