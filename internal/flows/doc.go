// Package flows contains pure-function orchestrators for every Engine operation.
//
// Each flow function (RunLogin, RunRegister, RunIdentify, RunJoin, ...) accepts a
// typed dependency struct and returns results without side-effects beyond those
// dependencies. Engine builds the structs once in Build and delegates to them.
//
// # Architecture boundaries
//
// Flow functions coordinate calls to the credential and session stores, the
// token codec, the password hasher, audit emission, and metrics. They do NOT
// own any of these resources. Ownership stays with the Engine.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import goStudio (to avoid import cycles).
//   - Perform I/O directly. All I/O is mediated through dependency funcs.
package flows
