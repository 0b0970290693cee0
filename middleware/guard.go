package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrEthical07/phpsess"
)

type resultContextKey struct{}

// ResultFromContext returns the authentication result stored by Guard or Optional.
func ResultFromContext(ctx context.Context) (phpsess.Result, bool) {
	res, ok := ctx.Value(resultContextKey{}).(phpsess.Result)
	return res, ok
}

// UserFromContext returns the authenticated user, if the request authenticated.
func UserFromContext(ctx context.Context) (any, bool) {
	res, ok := ResultFromContext(ctx)
	if !ok || res.Outcome != phpsess.OutcomeSuccess {
		return nil, false
	}
	return res.User, true
}

// FailureHandler writes the response for a Fail outcome.
type FailureHandler func(w http.ResponseWriter, r *http.Request, res phpsess.Result)

// ErrorHandler writes the response for an Error outcome or an abandoned wait.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option customizes Guard.
type Option func(*options)

type options struct {
	onFailure FailureHandler
	onError   ErrorHandler
}

// WithFailureHandler replaces the default 401 response.
func WithFailureHandler(h FailureHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onFailure = h
		}
	}
}

// WithErrorHandler replaces the default 500/503 response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onError = h
		}
	}
}

func defaultOptions() options {
	return options{
		onFailure: defaultFailure,
		onError:   defaultError,
	}
}

// Guard admits only requests that authenticate. A Fail outcome responds with
// its status and info, an Error outcome with 500, and a request context that
// ends before the outcome with 503.
func Guard(strategy *phpsess.Strategy, opts ...Option) func(http.Handler) http.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := strategy.AuthenticateResult(r)
			if err != nil {
				o.onError(w, r, err)
				return
			}

			switch res.Outcome {
			case phpsess.OutcomeSuccess:
				ctx := context.WithValue(r.Context(), resultContextKey{}, res)
				next.ServeHTTP(w, r.WithContext(ctx))
			case phpsess.OutcomeFail:
				o.onFailure(w, r, res)
			default:
				o.onError(w, r, res.Err)
			}
		})
	}
}

func defaultFailure(w http.ResponseWriter, _ *http.Request, res phpsess.Result) {
	status := res.Status
	if status == 0 {
		status = http.StatusUnauthorized
	}
	msg := http.StatusText(status)
	if res.Info != nil {
		msg = fmt.Sprint(res.Info)
	}
	http.Error(w, msg, status)
}

func defaultError(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
