// Package metrics provides internal metrics utilities.
package metrics

import "github.com/arloliu/registrar/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is
// configured, avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// IncQueryTotal discards the metric.
func (m *NopMetrics) IncQueryTotal(_ string) {}

// IncQueryError discards the metric.
func (m *NopMetrics) IncQueryError(_ string, _ types.Code) {}

// IncNotApplied discards the metric.
func (m *NopMetrics) IncNotApplied(_ string) {}

// IncRetryTotal discards the metric.
func (m *NopMetrics) IncRetryTotal(_ string) {}

// ObserveQueryDuration discards the metric.
func (m *NopMetrics) ObserveQueryDuration(_ string, _ float64) {}
