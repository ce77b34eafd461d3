// Package password implements secret hashing and verification with Argon2id.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Cost parameters are read back from each stored hash, so hashes made under
// an older Config keep verifying after the Config changes.
//
// # Absent identifiers
//
// [Argon2.VerifyAbsent] runs a full verification against a dummy hash built
// at construction. Login paths call it when no credential exists so that an
// unknown identifier costs the same as a wrong secret.
//
// # What this package must NOT do
//
//   - Store or retrieve secrets. Callers supply plaintext and receive hashes.
//   - Enforce length policy. Registration validation owns that.
//   - Import any other goStudio package.
package password
