package phpsess

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// attempt carries one Authenticate call from cookie lookup to outcome.
type attempt struct {
	s           *Strategy
	r           *http.Request
	rep         Reporter
	requestID   string
	fingerprint string
	start       time.Time
	log         *slog.Logger

	reported   atomic.Bool
	doneCalled atomic.Bool
}

// done is handed to the verify callback.
func (a *attempt) done(err error, user any, info any) error {
	if !a.doneCalled.CompareAndSwap(false, true) {
		a.s.metricInc(MetricDoneReplay)
		a.log.Warn("verify callback called done more than once", errAttr(err))
		return ErrDoneCalledTwice
	}

	switch {
	case err != nil:
		a.error(MetricCallbackFault, fmt.Errorf("%w: %w", ErrCallbackFault, err))
	case falsy(user):
		a.reject(info)
	default:
		a.success(user, info)
	}
	return nil
}

func (a *attempt) success(user any, info any) {
	if !a.reported.CompareAndSwap(false, true) {
		return
	}
	a.s.metricInc(MetricAuthSuccess)
	a.record(OutcomeSuccess, "authenticated", nil)
	a.rep.Success(user, info)
}

// fail reports a missing session.
func (a *attempt) fail(metric MetricID, reason string) {
	if !a.reported.CompareAndSwap(false, true) {
		return
	}
	a.s.metricInc(metric)
	a.s.metricInc(MetricAuthFailure)
	a.record(OutcomeFail, reason, ErrNoSession)
	a.rep.Fail(NoSessionMessage, http.StatusUnauthorized)
}

// reject reports a verify callback that found no user.
func (a *attempt) reject(info any) {
	if !a.reported.CompareAndSwap(false, true) {
		return
	}
	a.s.metricInc(MetricAuthFailure)
	a.record(OutcomeFail, "verify_rejected", nil)
	a.rep.Fail(info, http.StatusUnauthorized)
}

func (a *attempt) error(metric MetricID, err error) {
	if !a.reported.CompareAndSwap(false, true) {
		return
	}
	a.s.metricInc(metric)
	a.s.metricInc(MetricAuthError)
	a.record(OutcomeError, metricReason(metric), err)
	a.rep.Error(err)
}

func (a *attempt) record(outcome Outcome, reason string, err error) {
	elapsed := time.Since(a.start)
	if a.s.metrics != nil {
		a.s.metrics.Observe(MetricAuthLatency, elapsed)
	}

	attrs := []any{
		slog.String("outcome", outcome.String()),
		slog.String("reason", reason),
		slog.Duration("elapsed", elapsed),
	}
	if a.fingerprint != "" {
		attrs = append(attrs, slog.String("session_fingerprint", a.fingerprint))
	}
	switch outcome {
	case OutcomeError:
		a.log.Error("authentication error", append(attrs, errAttr(err))...)
	case OutcomeFail:
		a.log.Debug("authentication failed", append(attrs, errAttr(err))...)
	default:
		a.log.Debug("authenticated", attrs...)
	}

	if a.s.audit == nil {
		return
	}
	event := AuditEvent{
		Timestamp:          time.Now().UTC(),
		EventType:          AuditEventType,
		Strategy:           StrategyName,
		RequestID:          a.requestID,
		SessionFingerprint: a.fingerprint,
		IP:                 clientIPFromRequest(a.r),
		Outcome:            outcome.String(),
		Success:            outcome == OutcomeSuccess,
		Duration:           elapsed,
		Metadata:           map[string]string{"reason": reason},
	}
	if outcome == OutcomeError && err != nil {
		event.Error = err.Error()
	}
	a.s.audit.Emit(a.r.Context(), event)
}

func metricReason(id MetricID) string {
	switch id {
	case MetricStoreFault:
		return "store_fault"
	case MetricMalformedRecord:
		return "malformed_record"
	case MetricCallbackFault:
		return "callback_fault"
	default:
		return "error"
	}
}

// fingerprint identifies a session in logs without exposing the session ID.
func fingerprint(sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:8])
}

func errAttr(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
