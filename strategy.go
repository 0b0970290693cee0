package phpsess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrEthical07/phpsess/internal/audit"
	"github.com/MrEthical07/phpsess/phpserial"
	"github.com/MrEthical07/phpsess/session"
	"github.com/google/uuid"
)

// StrategyName identifies this strategy in logs and audit events.
const StrategyName = "phpsession-redis"

// Strategy authenticates requests against PHP sessions stored in Redis.
//
// A Strategy is built once per application through [Builder.Build] and is
// safe for concurrent use. It holds no per-request state.
type Strategy struct {
	sessionName       string
	completelyLogout  bool
	passReqToCallback bool

	reader session.Reader
	owned  io.Closer
	verify VerifyFunc

	logger  *slog.Logger
	metrics *Metrics
	audit   *audit.Dispatcher
}

// Name returns StrategyName.
func (s *Strategy) Name() string {
	return StrategyName
}

// SessionName returns the cookie the strategy reads.
func (s *Strategy) SessionName() string {
	if s == nil {
		return ""
	}
	return s.sessionName
}

// CompletelyLogout returns the configured flag. The strategy itself never acts on it.
func (s *Strategy) CompletelyLogout() bool {
	return s != nil && s.completelyLogout
}

// Close stops the audit dispatcher and closes the Redis client if the
// Builder created it. Injected clients are left open.
func (s *Strategy) Close() error {
	if s == nil {
		return nil
	}
	s.audit.Close()
	if s.owned != nil {
		return s.owned.Close()
	}
	return nil
}

// Ping checks the session store when it supports health checks.
func (s *Strategy) Ping(ctx context.Context) error {
	if s == nil || s.reader == nil {
		return ErrStrategyNotReady
	}
	p, ok := s.reader.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFault, err)
	}
	return nil
}

// MetricsSnapshot returns the current counters.
func (s *Strategy) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]float64{},
		}
	}
	return s.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under backpressure.
func (s *Strategy) AuditDropped() uint64 {
	if s == nil {
		return 0
	}
	return s.audit.Dropped()
}

// Authenticate resolves the request's PHP session and reports exactly one
// outcome to rep:
//
//   - no cookie, or no record in the store: Fail(NoSessionMessage, 401)
//   - store failure: Error wrapping ErrStoreFault
//   - undecodable record: Error wrapping ErrMalformedRecord
//   - no verify callback: Success(attrs, nil)
//   - otherwise the verify callback's done decides.
//
// The store read uses r.Context(). Authenticate returns once the outcome is
// reported or the verify callback has been handed done; an asynchronous
// callback may report later.
func (s *Strategy) Authenticate(r *http.Request, rep Reporter) {
	if rep == nil {
		return
	}
	if s == nil || s.reader == nil || r == nil {
		rep.Error(ErrStrategyNotReady)
		return
	}

	a := s.newAttempt(r, rep)

	cookie, err := r.Cookie(s.sessionName)
	if err != nil || cookie.Value == "" {
		a.fail(MetricNoCookie, "no_cookie")
		return
	}
	a.fingerprint = fingerprint(cookie.Value)

	raw, err := s.reader.Get(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			a.fail(MetricSessionNotFound, "session_not_found")
			return
		}
		a.error(MetricStoreFault, fmt.Errorf("%w: %w", ErrStoreFault, err))
		return
	}
	if len(raw) == 0 {
		a.fail(MetricSessionNotFound, "session_not_found")
		return
	}

	value, err := phpserial.Decode(phpserial.StripPrefix(raw))
	if err != nil {
		a.error(MetricMalformedRecord, fmt.Errorf("%w: %w", ErrMalformedRecord, err))
		return
	}
	flat, err := phpserial.Attributes(value)
	if err != nil {
		a.error(MetricMalformedRecord, fmt.Errorf("%w: %w", ErrMalformedRecord, err))
		return
	}
	attrs := Attributes(flat)
	a.log.Debug("session decoded",
		slog.Any("record", value),
		slog.Int("attributes", len(attrs)),
	)

	if s.verify == nil {
		a.success(attrs, nil)
		return
	}

	var req *http.Request
	if s.passReqToCallback {
		req = r
	}
	s.verify(req, attrs, a.done)
}

// AuthenticateResult runs Authenticate and waits for its outcome. An outcome
// reported before Authenticate returns always wins. Otherwise it returns
// r.Context().Err() if the context ends first; the outcome, when it arrives
// later, is discarded.
func (s *Strategy) AuthenticateResult(r *http.Request) (Result, error) {
	ch := make(resultReporter, 1)
	s.Authenticate(r, ch)

	select {
	case res := <-ch:
		return res, nil
	default:
	}

	var done <-chan struct{}
	if r != nil {
		done = r.Context().Done()
	}
	select {
	case res := <-ch:
		return res, nil
	case <-done:
		return Result{}, r.Context().Err()
	}
}

func (s *Strategy) newAttempt(r *http.Request, rep Reporter) *attempt {
	requestID := requestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &attempt{
		s:         s,
		r:         r,
		rep:       rep,
		requestID: requestID,
		start:     time.Now(),
		log: s.logger.With(
			slog.String("strategy", StrategyName),
			slog.String("request_id", requestID),
		),
	}
}

func (s *Strategy) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}
