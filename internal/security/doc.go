// Package security builds the configuration report an Engine exposes at
// startup: the effective token and hashing parameters plus warnings for
// settings that are accepted but weaker than recommended.
//
// # What this package must NOT do
//
//   - Receive or return secret material; only lengths are reported.
//   - Import goStudio or any sibling internal package.
package security
