// Package common contains shared constants and sentinel errors used across
// Sentinel client components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id so client logs
// can be matched against server logs.
const RequestIDHeaderName = "X-Request-ID"
