// Package internal groups the implementation packages that are private to
// goStudio.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//   - config: environment configuration for the gostudio binaries
//   - flows: the login, identify, account and membership orchestrators behind the Engine
//   - security: the startup configuration report
//   - sqlstore: SQLite persistence via bun, with schema migrations
//   - stores: Redis persistence for credentials and the teacher catalog
//
// # What this package must NOT do
//
//   - Export types that appear in the public goStudio API.
//   - Be imported by any package outside the goStudio module.
package internal
