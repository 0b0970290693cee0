package phpsess

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

func buildAuditTestStrategy(t *testing.T, cfg Config, sink AuditSink, verify VerifyFunc) *Strategy {
	t.Helper()

	mr, rdb := newTestRedis(t)
	mr.Set("PHPREDIS_SESSION:sid1", aliceRecord)
	mr.Set("PHPREDIS_SESSION:broken", "1|a:1:{")

	s, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithVerify(verify).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func collectEvents(t *testing.T, sink *ChannelSink, n int) []AuditEvent {
	t.Helper()
	events := make([]AuditEvent, 0, n)
	timeout := time.After(2 * time.Second)
	for len(events) < n {
		select {
		case ev := <-sink.Events():
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("expected %d audit events, got %d", n, len(events))
		}
	}
	return events
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = false

	sink := &countingSink{}
	s := buildAuditTestStrategy(t, cfg, sink, nil)

	_, _ = s.AuthenticateResult(requestWithSession("PHPSESSID", "sid1"))
	_, _ = s.AuthenticateResult(requestWithSession("PHPSESSID", ""))
	time.Sleep(30 * time.Millisecond)

	if sink.Count() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.Count())
	}
	if s.AuditDropped() != 0 {
		t.Fatalf("expected zero dropped, got %d", s.AuditDropped())
	}
}

func TestAuditOneEventPerOutcome(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.DropIfFull = false

	sink := NewChannelSink(8)
	s := buildAuditTestStrategy(t, cfg, sink, nil)

	ctx := WithClientIP(context.Background(), "198.51.100.33")
	for _, id := range []string{"sid1", "", "missing", "broken"} {
		req := requestWithSession("PHPSESSID", id).WithContext(ctx)
		if _, err := s.AuthenticateResult(req); err != nil {
			t.Fatalf("authenticate %q: %v", id, err)
		}
	}

	events := collectEvents(t, sink, 4)
	wantOutcomes := []string{"success", "fail", "fail", "error"}
	wantReasons := []string{"authenticated", "no_cookie", "session_not_found", "malformed_record"}
	for i, ev := range events {
		if ev.Outcome != wantOutcomes[i] {
			t.Fatalf("event %d: expected outcome %s, got %s", i, wantOutcomes[i], ev.Outcome)
		}
		if ev.Metadata["reason"] != wantReasons[i] {
			t.Fatalf("event %d: expected reason %s, got %s", i, wantReasons[i], ev.Metadata["reason"])
		}
		if ev.IP != "198.51.100.33" {
			t.Fatalf("event %d: expected IP 198.51.100.33, got %q", i, ev.IP)
		}
		if ev.RequestID == "" {
			t.Fatalf("event %d: expected generated request id", i)
		}
	}
	if events[1].SessionFingerprint != "" {
		t.Fatal("expected no fingerprint without a cookie")
	}
	if events[3].Error == "" {
		t.Fatal("expected error text on error outcome")
	}
}

func TestAuditNoSessionIDsInEvents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.DropIfFull = false

	const secretID = "sid1"
	sink := NewChannelSink(4)
	verify := func(_ *http.Request, _ Attributes, done DoneFunc) {
		_ = done(nil, nil, "rejected")
	}
	s := buildAuditTestStrategy(t, cfg, sink, verify)

	if _, err := s.AuthenticateResult(requestWithSession("PHPSESSID", secretID)); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	ev := collectEvents(t, sink, 1)[0]
	if ev.Outcome != "fail" || ev.Metadata["reason"] != "verify_rejected" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	fields := []string{ev.SessionFingerprint, ev.Error, ev.RequestID}
	for _, v := range ev.Metadata {
		fields = append(fields, v)
	}
	for _, f := range fields {
		if f == secretID || strings.Contains(f, "alice") {
			t.Fatalf("session data leaked into audit event: %q", f)
		}
	}
}

func TestAuditDroppedExposed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 1
	cfg.Audit.DropIfFull = true

	gate := make(chan struct{})
	sink := blockingSink(gate)
	s := buildAuditTestStrategy(t, cfg, sink, nil)
	defer close(gate)

	for i := 0; i < 5; i++ {
		_, _ = s.AuthenticateResult(requestWithSession("PHPSESSID", ""))
	}
	if s.AuditDropped() == 0 {
		t.Fatal("expected dropped audit events under backpressure")
	}
}

type blockingSink chan struct{}

func (b blockingSink) Emit(context.Context, AuditEvent) {
	<-b
}
