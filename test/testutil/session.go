// Package testutil provides testing utilities: a scriptable in-memory
// cql.Session fake for the unit suites and a Cassandra container bootstrap
// for the integration tests.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/adapter/cql"
)

// Session implements cql.Session for testing.
//
// Behavior is scripted through exported fields; tests mutate them between
// calls to drive different outcomes. Every issued statement and its binds
// are recorded for inspection.
type Session struct {
	// Statements records every statement passed to Query, in order.
	Statements []string

	// Binds records the bound values of every statement, in order.
	Binds [][]any

	// ExecErr is returned by Exec/ExecContext.
	ExecErr error

	// Applied is the lightweight-transaction applied flag reported by
	// MapScanCAS. NewSession defaults it to true.
	Applied bool

	// CASErr is returned by MapScanCAS.
	CASErr error

	// Rows are streamed by iterators, one []any per row in column order.
	Rows [][]any

	// IterErr is reported by the iterator's scanner on Err.
	IterErr error

	// Closed reports whether Close was called.
	Closed bool
}

// NewSession creates a fake session whose conditional writes apply.
func NewSession() *Session {
	return &Session{Applied: true}
}

// Query records the statement and returns a scripted query.
func (s *Session) Query(stmt string, values ...any) cql.Query {
	s.Statements = append(s.Statements, stmt)
	s.Binds = append(s.Binds, values)

	return &query{session: s, statement: stmt}
}

// Close marks the session closed.
func (s *Session) Close() {
	s.Closed = true
}

// LastStatement returns the most recently issued statement, or "".
func (s *Session) LastStatement() string {
	if len(s.Statements) == 0 {
		return ""
	}

	return s.Statements[len(s.Statements)-1]
}

type query struct {
	session   *Session
	statement string
}

func (q *query) WithContext(_ context.Context) cql.Query            { return q }
func (q *query) Consistency(_ cql.Consistency) cql.Query            { return q }
func (q *query) SerialConsistency(_ cql.Consistency) cql.Query      { return q }
func (q *query) PageSize(_ int) cql.Query                           { return q }
func (q *query) Statement() string                                  { return q.statement }
func (q *query) Exec() error                                        { return q.session.ExecErr }
func (q *query) ExecContext(_ context.Context) error                { return q.session.ExecErr }
func (q *query) Scan(_ ...any) error                                { return q.session.IterErr }
func (q *query) ScanContext(_ context.Context, dest ...any) error   { return q.Scan(dest...) }
func (q *query) Iter() cql.Iter                                     { return &iter{session: q.session} }
func (q *query) IterContext(_ context.Context) cql.Iter             { return q.Iter() }
func (q *query) MapScanCAS(_ map[string]any) (bool, error)          { return q.session.Applied, q.session.CASErr }
func (q *query) MapScanCASContext(_ context.Context, dest map[string]any) (bool, error) {
	return q.MapScanCAS(dest)
}

type iter struct {
	session *Session
}

func (i *iter) Scan(_ ...any) bool { return false }
func (i *iter) Close() error       { return i.session.IterErr }
func (i *iter) NumRows() int       { return len(i.session.Rows) }
func (i *iter) Scanner() cql.Scanner {
	return &scanner{session: i.session}
}

type scanner struct {
	session *Session
	index   int
}

func (s *scanner) Next() bool {
	return s.index < len(s.session.Rows)
}

// Scan assigns the current row's values into dest by pointer type.
func (s *scanner) Scan(dest ...any) error {
	row := s.session.Rows[s.index]
	s.index++

	if len(dest) != len(row) {
		return fmt.Errorf("testutil: scanned %d columns, row has %d", len(dest), len(row))
	}

	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return fmt.Errorf("testutil: column %d: %w", i, err)
		}
	}

	return nil
}

func (s *scanner) Err() error {
	return s.session.IterErr
}

func assign(dest, v any) error {
	switch d := dest.(type) {
	case *int:
		val, ok := v.(int)
		if !ok {
			return fmt.Errorf("value %v is not int", v)
		}
		*d = val
	case *int64:
		val, ok := v.(int64)
		if !ok {
			return fmt.Errorf("value %v is not int64", v)
		}
		*d = val
	case *string:
		val, ok := v.(string)
		if !ok {
			return fmt.Errorf("value %v is not string", v)
		}
		*d = val
	case *bool:
		val, ok := v.(bool)
		if !ok {
			return fmt.Errorf("value %v is not bool", v)
		}
		*d = val
	case *time.Time:
		val, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("value %v is not time.Time", v)
		}
		*d = val
	case *gocql.UUID:
		val, ok := v.(gocql.UUID)
		if !ok {
			return fmt.Errorf("value %v is not gocql.UUID", v)
		}
		*d = val
	default:
		return fmt.Errorf("unsupported destination type %T", dest)
	}

	return nil
}
