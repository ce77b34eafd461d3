// Package goStudio is the core of a small studio booking service: users book
// places in scheduled sessions run by teachers, and every request is guarded
// by a signed, stateless bearer token.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goStudio is the public surface. It exposes [Engine], [Builder], [Config], the store
// interfaces ([CredentialStore], [SessionStore], [TeacherStore]) and value types
// ([Principal], [UserRecord], [Session], [Teacher]). Flow orchestration and audit
// dispatch live under internal/ and are never exported. Concrete stores live in
// internal/stores (Redis), session (Redis booking sessions) and internal/sqlstore (SQLite).
//
// # What this package must NOT do
//
//   - Cache verified identities. Every request resolves its principal with one store read.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports goStudio (no import cycles).
//
// # Error contract
//
// Engine methods return errors that match one of five categories with [errors.Is]:
// [ErrUnauthenticated], [ErrUnauthorized], [ErrNotFound], [ErrConflict] and
// [ErrMalformed]. Anything else is an infrastructure fault.
package goStudio
