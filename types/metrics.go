package types

// MetricsCollector defines methods for collecting operational metrics.
//
// The op label identifies the kind of statement executed: "exec" for one-off
// statements (DDL), "cas" for conditional writes, and "select" for row
// streaming. Implementations should be thread-safe as methods may be called
// concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	collector := vm.New(vm.WithPrefix("registrar"))
//	conn, res := store.Connect(cfg, store.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// IncQueryTotal increments the total statement counter for the op kind.
	IncQueryTotal(op string)

	// IncQueryError increments the error counter for the op kind and the
	// mapped result code.
	IncQueryError(op string, code Code)

	// IncNotApplied increments the rejected-conditional-write counter.
	// NotApplied is counted separately from errors: it is an expected
	// outcome of LWT races, not a failure.
	IncNotApplied(op string)

	// IncRetryTotal increments the retry counter for the op kind.
	IncRetryTotal(op string)

	// ObserveQueryDuration records a statement duration in seconds.
	ObserveQueryDuration(op string, seconds float64)
}
