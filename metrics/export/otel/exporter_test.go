package otel

import (
	"context"
	"sync"
	"testing"

	"github.com/MrEthical07/phpsess"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot phpsess.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() phpsess.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := phpsess.MetricsSnapshot{
		Counters:      make(map[phpsess.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms:    make(map[phpsess.MetricID][]uint64, len(f.snapshot.Histograms)),
		HistogramSums: make(map[phpsess.MetricID]float64, len(f.snapshot.HistogramSums)),
	}
	for k, v := range f.snapshot.HistogramSums {
		out.HistogramSums[k] = v
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("phpsess-test")

	src := &fakeSource{
		snapshot: phpsess.MetricsSnapshot{
			Counters: map[phpsess.MetricID]uint64{
				phpsess.MetricAuthSuccess: 3,
			},
			Histograms: map[phpsess.MetricID][]uint64{
				phpsess.MetricAuthLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
			HistogramSums: map[phpsess.MetricID]float64{
				phpsess.MetricAuthLatency: 0.25,
			},
		},
		dropped: 1,
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("expected collected metrics, got none")
	}

	if got := sumValue(t, rm, "phpsess_auth_success_total"); got != 3 {
		t.Fatalf("expected phpsess_auth_success_total=3, got %d", got)
	}
	if got := sumValue(t, rm, "phpsess_audit_dropped_total"); got != 1 {
		t.Fatalf("expected phpsess_audit_dropped_total=1, got %d", got)
	}
	if got := gaugeValue(t, rm, "phpsess_authenticate_latency_seconds_bucket_le_inf"); got != 8 {
		t.Fatalf("expected +Inf bucket=8, got %d", got)
	}
	sum, ok := findMetric(t, rm, "phpsess_authenticate_latency_seconds_sum").Data.(metricdata.Gauge[float64])
	if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 0.25 {
		t.Fatalf("expected latency sum gauge 0.25, got %+v", sum)
	}
}

func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return metricdata.Metrics{}
}

func sumValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	sum, ok := findMetric(t, rm, name).Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 {
		t.Fatalf("metric %s is not a single-point int64 sum", name)
	}
	return sum.DataPoints[0].Value
}

func gaugeValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	g, ok := findMetric(t, rm, name).Data.(metricdata.Gauge[int64])
	if !ok || len(g.DataPoints) != 1 {
		t.Fatalf("metric %s is not a single-point int64 gauge", name)
	}
	return g.DataPoints[0].Value
}

func TestNewOTelExporterRejectsNilStrategy(t *testing.T) {
	meter := sdkmetric.NewMeterProvider().Meter("phpsess-test")
	if _, err := NewOTelExporter(meter, nil); err != ErrNilSource {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestExporterRejectsNilSource(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("phpsess-test")

	if _, err := NewOTelExporterFromSource(meter, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("phpsess-test")

	src := &fakeSource{
		snapshot: phpsess.MetricsSnapshot{
			Counters: map[phpsess.MetricID]uint64{
				phpsess.MetricAuthSuccess: 1,
			},
			Histograms: map[phpsess.MetricID][]uint64{
				phpsess.MetricAuthLatency: {1, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[phpsess.MetricAuthSuccess] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}
