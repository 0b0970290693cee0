// Package otel publishes phpsess counters and the latency histogram through
// OpenTelemetry observable instruments.
//
// [NewOTelExporter] registers one Int64ObservableCounter per counter and one
// Int64ObservableGauge per histogram bucket, plus count and sum gauges. A single callback reads
// [phpsess.Strategy.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Mutate strategy state.
package otel
