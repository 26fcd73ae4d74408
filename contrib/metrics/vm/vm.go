package vm

import (
	"fmt"
	"io"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/registrar/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "registrar"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// Counters and histograms are created lazily per operation and error label
// via the GetOrCreate pattern; the label cardinality is small (three
// operation kinds, nine result codes) and bounded. Thread-safe for
// concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally
// unless WithMetricsSet provides one.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	conn, _ := store.NewConn(session, store.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "registrar",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	return c
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// IncQueryTotal increments the statement execution counter.
func (c *Collector) IncQueryTotal(op string) {
	c.set.GetOrCreateCounter(
		fmt.Sprintf(`%s_query_total{op="%s"}`, c.prefix, op)).Inc()
}

// IncQueryError increments the failed-statement counter for a result code.
func (c *Collector) IncQueryError(op string, code types.Code) {
	c.set.GetOrCreateCounter(
		fmt.Sprintf(`%s_query_errors_total{op="%s",code="%s"}`, c.prefix, op, code.String())).Inc()
}

// IncNotApplied increments the rejected-conditional-write counter.
func (c *Collector) IncNotApplied(op string) {
	c.set.GetOrCreateCounter(
		fmt.Sprintf(`%s_not_applied_total{op="%s"}`, c.prefix, op)).Inc()
}

// IncRetryTotal increments the transient-retry counter.
func (c *Collector) IncRetryTotal(op string) {
	c.set.GetOrCreateCounter(
		fmt.Sprintf(`%s_retries_total{op="%s"}`, c.prefix, op)).Inc()
}

// ObserveQueryDuration records a statement round-trip duration in seconds.
func (c *Collector) ObserveQueryDuration(op string, seconds float64) {
	c.set.GetOrCreateHistogram(
		fmt.Sprintf(`%s_query_duration_seconds{op="%s"}`, c.prefix, op)).Update(seconds)
}
