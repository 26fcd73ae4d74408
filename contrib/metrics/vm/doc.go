// Package vm provides a VictoriaMetrics-based implementation of the
// MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with the default prefix "registrar":
//
//	collector := vm.New()
//	conn, _ := store.NewConn(session,
//	    store.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_query_total{op="exec"}
//   - myapp_query_duration_seconds{op="select"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
//   - {prefix}_query_total{op} - Counter of executed statements
//   - {prefix}_query_errors_total{op,code} - Counter of failed statements by result code
//   - {prefix}_not_applied_total{op} - Counter of rejected conditional writes
//   - {prefix}_retries_total{op} - Counter of transient-failure retries
//   - {prefix}_query_duration_seconds{op} - Histogram of statement latencies
//
// The op label is "exec" for plain statements, "cas" for conditional
// writes, and "select" for row-streaming reads.
package vm
