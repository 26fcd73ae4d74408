package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/arloliu/registrar/adapter/cql"
	gocqladapter "github.com/arloliu/registrar/adapter/cql/gocql"
	"github.com/arloliu/registrar/internal/logging"
	"github.com/arloliu/registrar/internal/metrics"
	"github.com/arloliu/registrar/types"
)

// Operation kinds used for metrics labels.
const (
	opExec   = "exec"
	opCAS    = "cas"
	opSelect = "select"
)

// Config holds the connection settings for the store session.
type Config struct {
	// Hosts are the contact points of the cluster.
	Hosts []string

	// Port is the CQL native protocol port. Defaults to 9042.
	Port int

	// Timeout is the per-request timeout. Defaults to 5s.
	Timeout time.Duration

	// Consistency is the default consistency level. Defaults to Quorum.
	Consistency types.Consistency
}

// DefaultConfig returns a Config with sensible defaults for a local node.
//
// Returns:
//   - Config: Configuration with default settings
func DefaultConfig() Config {
	return Config{
		Hosts:       []string{"127.0.0.1"},
		Port:        9042,
		Timeout:     5 * time.Second,
		Consistency: types.Quorum,
	}
}

// Conn is the single shared connection handle to the store.
//
// One Conn is created at process start and shared read-only by every table
// module and every request-handling goroutine. Conn adds no locking of its
// own: serialization of concurrent writers happens at the store via
// lightweight transactions, and the underlying driver session is safe for
// concurrent use by its own contract.
//
// All failures are reported as Results; no driver error crosses this
// boundary as a raw error value.
type Conn struct {
	session cql.Session
	logger  types.Logger
	metrics types.MetricsCollector
	retry   RetryPolicy
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.MetricsCollector) Option {
	return func(c *Conn) {
		c.metrics = collector
	}
}

// WithRetryPolicy enables retry-with-backoff for transient failures.
//
// Transient codes are CONNECTION_ERROR, RESOURCE_ERROR, UNAVAILABLE, and
// TIMEOUT. NOT_APPLIED and NOT_FOUND are never retried.
//
// Parameters:
//   - policy: The retry policy; a zero MaxRetries disables retrying
//
// Returns:
//   - Option: Configuration option
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Conn) {
		c.retry = policy
	}
}

// NewConn wraps an existing session into a connection handle.
//
// This is the constructor used by tests and by callers that manage their own
// driver session. Production code normally uses Connect.
//
// Parameters:
//   - session: The underlying CQL session (required)
//   - opts: Optional configuration options
//
// Returns:
//   - *Conn: A new connection handle
//   - error: types.ErrNilSession if session is nil
func NewConn(session cql.Session, opts ...Option) (*Conn, error) {
	if session == nil {
		return nil, types.ErrNilSession
	}

	conn := &Conn{
		session: session,
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(conn)
	}

	return conn, nil
}

// Connect establishes the session to the store.
//
// Connection failures are reported as CONNECTION_ERROR with the driver
// message; the call is idempotent and safe to retry.
//
// Parameters:
//   - cfg: Connection settings
//   - opts: Optional configuration options
//
// Returns:
//   - *Conn: The connection handle, nil on failure
//   - types.Result: OK or CONNECTION_ERROR
func Connect(cfg Config, opts ...Option) (*Conn, types.Result) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	if cfg.Port > 0 {
		cluster.Port = cfg.Port
	}
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	cluster.Consistency = gocql.Consistency(cfg.Consistency)

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, types.Failure(types.ConnectionError, err.Error())
	}

	conn, cerr := NewConn(gocqladapter.WrapSession(session), opts...)
	if cerr != nil {
		session.Close()
		return nil, types.Failure(types.Unknown, cerr.Error())
	}

	return conn, types.Ok()
}

// Close terminates the underlying session.
func (c *Conn) Close() {
	c.session.Close()
}

// Session returns the underlying driver session.
//
// Use with caution - direct access bypasses error mapping and metrics.
//
// Returns:
//   - cql.Session: The raw session
func (c *Conn) Session() cql.Session {
	return c.session
}

// Exec executes a one-off statement, typically schema DDL.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - stmt: CQL statement with ? placeholders
//   - binds: Values to bind to placeholders
//
// Returns:
//   - types.Result: OK or the mapped driver failure
func (c *Conn) Exec(ctx context.Context, stmt string, binds ...any) types.Result {
	return c.withRetry(ctx, opExec, func() types.Result {
		start := time.Now()
		err := c.session.Query(stmt, binds...).ExecContext(ctx)
		c.observe(opExec, start)

		res := MapError(err)
		if !res.IsOK() {
			c.metrics.IncQueryError(opExec, res.Code)
			c.logger.Errorw("statement execution failed",
				"stmt", stmt,
				"result", res.String(),
			)
		}

		return res
	})
}

// ExecCAS executes a conditional write (a statement carrying an
// IF [NOT] EXISTS clause).
//
// The store reports transport-level success even when the condition was
// rejected, so on success the lightweight-transaction applied flag is
// inspected and a false flag overrides the result to NOT_APPLIED. This
// double-check is mandatory for every conditional write in the system.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - stmt: Conditional CQL statement with ? placeholders
//   - binds: Values to bind to placeholders
//
// Returns:
//   - types.Result: OK, NOT_APPLIED, or the mapped driver failure
func (c *Conn) ExecCAS(ctx context.Context, stmt string, binds ...any) types.Result {
	return c.withRetry(ctx, opCAS, func() types.Result {
		start := time.Now()
		previous := make(map[string]any)
		applied, err := c.session.Query(stmt, binds...).MapScanCASContext(ctx, previous)
		c.observe(opCAS, start)

		res := MapError(err)
		if !res.IsOK() {
			c.metrics.IncQueryError(opCAS, res.Code)
			c.logger.Errorw("conditional write failed",
				"stmt", stmt,
				"result", res.String(),
			)

			return res
		}

		if !applied {
			c.metrics.IncNotApplied(opCAS)
			return types.NotAppliedResult()
		}

		return res
	})
}

// Row provides access to the columns of a single streamed row.
type Row interface {
	// Scan reads the current row into dest.
	Scan(dest ...any) error
}

// RowFunc consumes one streamed row. A non-OK result short-circuits the
// iteration and is returned to the caller unchanged.
type RowFunc func(row Row) types.Result

// CountFunc receives the row-count hint before rows are streamed. The hint
// reflects the current result page, so callers use it to pre-size
// collections, not as an exact total.
type CountFunc func(n int)

// SelectRows executes a select statement and streams rows to onRow.
//
// The zero-row convention: an empty result yields NOT_FOUND. Callers whose
// access pattern is a genuinely optional multi-row listing convert that to
// OK with an empty collection themselves; by-key readers pass it through.
//
// onCount is invoked once per attempt, before the first row, with a
// capacity hint; when a retry policy is configured a transient failure
// re-executes the statement, so callers must reset any accumulation state in
// onCount. onRow runs once per row, short-circuiting on the first non-OK
// result. Panics raised in row handling are recovered and converted to
// UNKNOWN_ERROR with the panic text as message.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - stmt: CQL select statement with ? placeholders
//   - binds: Values to bind to placeholders
//   - onCount: Capacity-hint callback, may be nil
//   - onRow: Per-row callback (required)
//
// Returns:
//   - types.Result: OK, NOT_FOUND on zero rows, or the mapped failure
func (c *Conn) SelectRows(ctx context.Context, stmt string, binds []any, onCount CountFunc, onRow RowFunc) (res types.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = types.Failuref(types.Unknown, "row handling panic: %v", r)
			c.metrics.IncQueryError(opSelect, types.Unknown)
			c.logger.Errorw("panic during row streaming",
				"stmt", stmt,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	return c.withRetry(ctx, opSelect, func() types.Result {
		start := time.Now()
		iter := c.session.Query(stmt, binds...).IterContext(ctx)

		if onCount != nil {
			onCount(iter.NumRows())
		}

		scanner := iter.Scanner()
		rows := 0
		for scanner.Next() {
			rows++
			if rowRes := onRow(scanner); !rowRes.IsOK() {
				// Err releases the iterator; the row result wins.
				_ = scanner.Err()
				c.observe(opSelect, start)

				return rowRes
			}
		}

		c.observe(opSelect, start)

		if err := scanner.Err(); err != nil {
			mapped := MapError(err)
			c.metrics.IncQueryError(opSelect, mapped.Code)
			c.logger.Errorw("row streaming failed",
				"stmt", stmt,
				"result", mapped.String(),
			)

			return mapped
		}

		if rows == 0 {
			return types.NotFoundResult()
		}

		return types.Ok()
	})
}

// observe records duration and totals for an operation kind.
func (c *Conn) observe(op string, start time.Time) {
	c.metrics.IncQueryTotal(op)
	c.metrics.ObserveQueryDuration(op, time.Since(start).Seconds())
}
