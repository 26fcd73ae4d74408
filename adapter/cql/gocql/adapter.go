// Package gocql provides an adapter for github.com/gocql/gocql.
package gocql

import (
	"context"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/adapter/cql"
)

// Session wraps a gocql session.
type Session struct {
	session *gocql.Session
}

// NewSession creates a new adapter from a gocql session.
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// WrapSession is an alias for NewSession that returns the cql.Session
// interface directly.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	session, _ := cluster.CreateSession()
//	conn := store.NewConn(gocqladapter.WrapSession(session))
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - cql.Session: An adapter implementing cql.Session interface
func WrapSession(session *gocql.Session) cql.Session {
	return NewSession(session)
}

// Query creates a new query for the given statement.
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{
		query:     s.session.Query(stmt, values...),
		statement: stmt,
	}
}

// Close terminates the session.
func (s *Session) Close() {
	s.session.Close()
}

// Query wraps a gocql query.
type Query struct {
	query     *gocql.Query
	statement string
}

// WithContext associates a context with the query.
func (q *Query) WithContext(ctx context.Context) cql.Query {
	q.query = q.query.WithContext(ctx)
	return q
}

// Consistency sets the consistency level.
func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(gocql.Consistency(c))
	return q
}

// SerialConsistency sets the consistency level for the serial phase of CAS
// operations.
func (q *Query) SerialConsistency(c cql.Consistency) cql.Query {
	q.query = q.query.SerialConsistency(gocql.SerialConsistency(c))
	return q
}

// PageSize sets the page size.
func (q *Query) PageSize(n int) cql.Query {
	q.query = q.query.PageSize(n)
	return q
}

// Exec executes the query.
func (q *Query) Exec() error {
	return q.query.Exec()
}

// ExecContext executes the query with context.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

// Scan executes and scans a single row.
func (q *Query) Scan(dest ...any) error {
	return q.query.Scan(dest...)
}

// ScanContext executes and scans a single row with context.
func (q *Query) ScanContext(ctx context.Context, dest ...any) error {
	return q.query.WithContext(ctx).Scan(dest...)
}

// Iter returns an iterator for results.
func (q *Query) Iter() cql.Iter {
	return &Iter{iter: q.query.Iter()}
}

// IterContext returns an iterator for results with context.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

// MapScanCAS executes a lightweight transaction and scans into a map.
func (q *Query) MapScanCAS(dest map[string]any) (applied bool, err error) {
	return q.query.MapScanCAS(dest)
}

// MapScanCASContext executes a lightweight transaction with context.
func (q *Query) MapScanCASContext(ctx context.Context, dest map[string]any) (applied bool, err error) {
	return q.query.WithContext(ctx).MapScanCAS(dest)
}

// Statement returns the CQL statement.
func (q *Query) Statement() string {
	return q.statement
}

// Iter wraps a gocql iterator.
type Iter struct {
	iter *gocql.Iter
}

// Scan reads the next row.
func (i *Iter) Scan(dest ...any) bool {
	return i.iter.Scan(dest...)
}

// Close closes the iterator and returns any error.
func (i *Iter) Close() error {
	return i.iter.Close()
}

// NumRows returns the number of rows in the current page.
func (i *Iter) NumRows() int {
	return i.iter.NumRows()
}

// Scanner returns a database/sql-style scanner for the iterator.
func (i *Iter) Scanner() cql.Scanner {
	return &Scanner{scanner: i.iter.Scanner()}
}

// Scanner wraps a gocql scanner.
type Scanner struct {
	scanner gocql.Scanner
}

// Next advances to the next row.
func (s *Scanner) Next() bool {
	return s.scanner.Next()
}

// Scan reads the current row into dest.
func (s *Scanner) Scan(dest ...any) error {
	return s.scanner.Scan(dest...)
}

// Err returns any error from iteration and releases resources.
func (s *Scanner) Err() error {
	return s.scanner.Err()
}
