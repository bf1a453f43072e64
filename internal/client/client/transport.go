package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/attendance/internal/buildinfo"
	"github.com/dmitrijs2005/attendance/internal/common"
	"github.com/google/uuid"
)

// tokenError marks a failure to read the token, as opposed to a network
// failure, so it is not reported as ErrUnavailable.
type tokenError struct {
	err error
}

func (e *tokenError) Error() string { return fmt.Sprintf("read token: %v", e.err) }
func (e *tokenError) Unwrap() error { return e.err }

// authTransport is the request interceptor: it stamps every request with
// the current bearer token, a request id and the client user agent.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if t.tokens != nil {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			if req.Body != nil {
				_ = req.Body.Close()
			}
			return nil, &tokenError{err: err}
		}
		if token != "" {
			out.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
		}
	}

	if out.Header.Get(common.RequestIDHeaderName) == "" {
		out.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	out.Header.Set("User-Agent", buildinfo.UserAgent())

	return t.base.RoundTrip(out)
}
