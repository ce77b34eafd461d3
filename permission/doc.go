// Package permission holds the authorization rules evaluated against the
// principal bound to a request.
//
// There are exactly two rule families: [AdminOnly] and [SelfOnly]. Both are
// pure functions of their arguments. An absent principal is denied by every
// rule.
//
// # What this package must NOT do
//
//   - Perform I/O or read request state.
//   - Import goStudio. Callers pass any value satisfying [Identity].
package permission
