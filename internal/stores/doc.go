// Package stores provides the Redis-backed credential and teacher stores.
// Booking sessions live in the session package.
//
// # Design
//
// Each user is one hash keyed by email, so the per-request identity lookup is
// a single HGETALL. A string key maps the numeric ID back to the email.
// Creation and deletion run as Lua scripts, which makes the email claim
// atomic: two concurrent registrations for one email cannot both succeed.
// Teachers are hashes keyed by ID plus a sorted-set index.
//
// # Architecture boundaries
//
// This package owns persistence only. It does NOT hash secrets, validate
// input, or make authorization decisions; those belong to the Engine and the
// flow functions in internal/flows.
//
// # What this package must NOT do
//
//   - Import internal/flows or any other sibling internal package.
//   - Log or expose password hashes.
//   - Cache records in process memory.
package stores
