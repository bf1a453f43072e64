// Package session is the persisted session store: the bearer token and the
// last known user profile, kept in the device-local SQLite database so they
// survive restarts.
//
// The token is sealed with the device key (see cryptox) before it touches
// disk; the user is stored as JSON. Storage failures are returned to the
// caller unchanged and never retried.
package session
