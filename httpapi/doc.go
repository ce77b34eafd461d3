// Package httpapi is the JSON HTTP surface of the studio service, routed with
// chi.
//
// Everything under /api requires an identified principal except the
// /api/auth login and registration actions. Request identity comes from
// [middleware.Identify]; handlers never look at the Authorization header.
//
// Domain errors map to status codes in [writeError]: Unauthenticated and
// Unauthorized become 401, NotFound 404, Conflict and Malformed 400, and
// anything else 500.
package httpapi
