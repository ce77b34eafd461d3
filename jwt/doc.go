// Package jwt issues and verifies the stateless bearer tokens that carry an
// authenticated subject between requests.
//
// Tokens are compact JWS strings signed with a symmetric HMAC key. The only
// validity conditions are a matching signature and an unexpired "exp" claim;
// there is no revocation list and nothing is persisted server-side.
//
// Every verification failure wraps [ErrInvalid]. The concrete [Reason]
// (forged, expired, malformed) is kept on [InvalidError] for logging and must
// not be surfaced to clients.
package jwt
