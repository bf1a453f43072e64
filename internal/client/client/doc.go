// Package client is the typed HTTP client of the attendance API.
//
// # Overview
//
// One HTTPClient is shared by the whole application. It carries the base
// URL and a fixed request timeout, and its transport attaches
// "Authorization: Bearer <token>" to every outgoing request when the
// TokenSource has a token. Requests without a token are sent as is; the
// server decides whether to reject them.
//
// # Errors
//
// Non-2xx responses are returned as *APIError holding the untouched server
// body. Conditions callers commonly branch on are also exposed as sentinel
// errors for errors.Is: ErrUnauthorized (401/403), ErrUnavailable (transport
// failures and timeouts) and ErrLocationRequired (check-out without
// coordinates, detected before any network call). MessageOf turns any of
// these into a line suitable for the user.
//
// There is no caching and no retry: every call is a fresh round trip and a
// failure is final for that attempt.
package client
