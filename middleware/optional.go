package middleware

import (
	"context"
	"net/http"

	"github.com/MrEthical07/phpsess"
)

// Optional authenticates when possible and always calls next. The Result is
// stored in the context whether or not it succeeded; UserFromContext reports
// false for anonymous requests. Store and decode errors are treated as
// anonymous, so handlers that care should inspect the Result.
func Optional(strategy *phpsess.Strategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := strategy.AuthenticateResult(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), resultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
