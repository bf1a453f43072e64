// Package common contains shared constants and helpers used across
// the attendance client packages.
package common

// AuthorizationHeaderName carries the bearer token on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the session token in the Authorization header.
const BearerScheme = "Bearer "

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// ClientType identifies this client to the auth endpoints.
const ClientType = "mobile"
