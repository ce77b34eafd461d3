// Package session holds the bookable class [Session] model, its participant
// set, and the Redis persistence used when the service runs on Redis.
//
// # Membership
//
// A Session carries an unordered set of participant user IDs. [Session.AddMember]
// and [Session.RemoveMember] keep each ID at most once and report whether the
// set changed; callers decide what an unchanged set means.
//
// # Binary encoding
//
// [Store] keeps each session as one Redis string in a versioned binary layout
// (see [Encode]). New versions append fields and never reinterpret old ones.
//
// # What this package must NOT do
//
//   - Import goStudio, jwt, or permission.
//   - Decide who may join or leave. Authorization belongs to the Engine.
package session
