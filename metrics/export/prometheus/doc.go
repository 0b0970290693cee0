// Package prometheus renders phpsess metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] wraps a [phpsess.Strategy] and exposes an
// [http.Handler]. Counters are named phpsess_*_total; the single histogram is
// phpsess_authenticate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global registry. Callers mount the Handler.
//   - Mutate strategy state.
package prometheus
