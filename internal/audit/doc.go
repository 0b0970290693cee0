// Package audit implements async dispatching of authentication outcome events.
//
// # Components
//
//   - [Sink] — interface for event consumers (channel, JSON writer, slog, no-op).
//   - [Dispatcher] — buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event] — one record per Authenticate outcome: request ID, session
//     fingerprint, client IP, outcome, error.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit; that belongs to the Strategy.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import phpsess or any sibling package.
//   - Carry raw session IDs. Events only hold a fingerprint.
package audit
