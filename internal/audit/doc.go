// Package audit implements async event dispatching for security-relevant operations.
//
// # Components
//
//   - [Sink] is the interface for event consumers (channel, JSON writer, slog, no-op).
//   - [Dispatcher] is the buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event] is the structured audit record with timestamp, type, user, booking session, request ID, IP, metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which events
// to emit; the Engine and flow functions make that call.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import goStudio or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
