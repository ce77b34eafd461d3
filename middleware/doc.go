// Package middleware exposes the HTTP adapters that put a goStudio principal
// on each request and enforce its presence.
//
// # Components
//
//   - [Identify] runs once per request, resolves the bearer token through the
//     Engine and binds the resulting principal into the request context.
//   - [RequireAuthenticated] and [RequireAdmin] reject requests downstream of
//     Identify that lack a (suitable) principal.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT implement
// authentication logic itself; token verification and the principal lookup are
// delegated to Engine.Identify and rule evaluation to the permission package.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Write a response from Identify; it always calls the next handler exactly once.
//   - Cache principals between requests.
package middleware
