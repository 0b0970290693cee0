// Package middleware exposes net/http adapters around phpsess.Strategy.
//
// # Guards
//
//   - [Guard] rejects requests whose PHP session does not authenticate.
//   - [Optional] authenticates when it can and lets anonymous requests through.
//
// Both run Strategy.AuthenticateResult and store the [phpsess.Result] in the
// request context, where handlers read it with [ResultFromContext] or
// [UserFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Strategy calls. It does NOT
// decide authentication itself; every decision comes from the Strategy's
// reported outcome.
//
// # What this package must NOT do
//
//   - Read cookies or Redis directly (the Strategy does).
//   - Leak store or decode errors into response bodies.
package middleware
