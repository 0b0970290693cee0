// Package session provides read-only access to PHP session records kept in
// Redis by PHP's redis session handler (phpredis).
//
// # Key layout
//
// phpredis stores each session under "<prefix><session id>" with the
// serialized session as a plain string value. [Store.Get] issues exactly one
// GET per call and returns the raw bytes untouched; decoding belongs to the
// phpserial package.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis reads) and the [Reader] contract the
// strategy consumes. It does NOT decode records, inspect cookies, or make
// authentication decisions.
//
// # What this package must NOT do
//
//   - Write, renew, or expire session keys. PHP owns the session lifecycle.
//   - Retry failed reads. One attempt per call; callers wrap for resilience.
//   - Import phpsess or phpserial (no upward imports).
package session
