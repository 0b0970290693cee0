// Package phpsess authenticates HTTP requests against PHP sessions kept in
// Redis, so Go services can sit next to a PHP application and trust its login.
//
// A request is authenticated by reading the PHP session cookie, fetching the
// record from Redis with a single GET, decoding PHP's serialize() notation,
// and handing the session attributes to an optional verify callback.
//
//	strategy, err := phpsess.New().
//		WithConfig(phpsess.DefaultConfig()).
//		WithRedis(rdb).
//		WithVerify(func(_ *http.Request, attrs phpsess.Attributes, done phpsess.DoneFunc) {
//			name, ok := attrs.String("name")
//			if !ok {
//				_ = done(nil, nil, "no user in session")
//				return
//			}
//			_ = done(nil, User{Name: name}, nil)
//		}).
//		Build()
//
// # Outcomes
//
// Every [Strategy.Authenticate] call reports exactly one outcome to its
// [Reporter]: Success, Fail (no session, or the verify callback found no
// user) or Error (store fault, malformed record, callback error). Errors wrap
// [ErrStoreFault], [ErrMalformedRecord] or [ErrCallbackFault].
//
// # Architecture boundaries
//
// phpsess is the public surface: [Strategy], [Builder], [Config] and the
// outcome types. Record decoding lives in phpserial, Redis access in session,
// HTTP wiring in middleware.
//
// # What this package must NOT do
//
//   - Create, renew, expire, or write sessions. PHP owns the session lifecycle.
//   - Retry store reads or time out verify callbacks. Callers bound requests
//     through the request context.
//   - Log raw session IDs. Logs and audit events carry a fingerprint.
package phpsess
