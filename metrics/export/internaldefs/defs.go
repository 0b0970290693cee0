package internaldefs

import (
	"github.com/MrEthical07/phpsess"
)

// CounterDef names one strategy counter for exporters.
type CounterDef struct {
	ID   phpsess.MetricID
	Name string
	Help string
}

// HistogramDef names one strategy histogram for exporters.
type HistogramDef struct {
	ID   phpsess.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in render order.
var CounterDefs = []CounterDef{
	{ID: phpsess.MetricAuthSuccess, Name: "phpsess_auth_success_total", Help: "Authenticate calls that reported success."},
	{ID: phpsess.MetricAuthFailure, Name: "phpsess_auth_failure_total", Help: "Authenticate calls that reported fail."},
	{ID: phpsess.MetricAuthError, Name: "phpsess_auth_error_total", Help: "Authenticate calls that reported error."},
	{ID: phpsess.MetricNoCookie, Name: "phpsess_no_cookie_total", Help: "Requests without the session cookie."},
	{ID: phpsess.MetricSessionNotFound, Name: "phpsess_session_not_found_total", Help: "Session cookies with no record in the store."},
	{ID: phpsess.MetricStoreFault, Name: "phpsess_store_fault_total", Help: "Session store read failures."},
	{ID: phpsess.MetricMalformedRecord, Name: "phpsess_malformed_record_total", Help: "Session records that failed to decode."},
	{ID: phpsess.MetricCallbackFault, Name: "phpsess_callback_fault_total", Help: "Verify callbacks that completed with an error."},
	{ID: phpsess.MetricDoneReplay, Name: "phpsess_done_replay_total", Help: "Extra done invocations ignored."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: phpsess.MetricAuthLatency, Name: "phpsess_authenticate_latency_seconds", Help: "Time from Authenticate to reported outcome."},
}

// AuditDroppedName is the counter for audit events dropped under backpressure.
const AuditDroppedName = "phpsess_audit_dropped_total"

// AuditDroppedHelp describes AuditDroppedName.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."

// HistogramBounds are the upper bounds, in seconds, of the latency buckets.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are HistogramBounds rendered for use in metric names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero-filling
// missing buckets and ignoring extras.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
