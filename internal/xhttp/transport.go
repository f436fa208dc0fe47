package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/boldrelay/internal/version"
)

type relayTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*relayTransport)(nil)

func (t *relayTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(UserAgent, version.UserAgent())
	if req.Header.Get(Accept) == "" {
		req.Header.Set(Accept, ApplicationJSON)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that stamps the relay user agent.
func NewTransport() http.RoundTripper {
	return NewTransportWithBase(http.DefaultTransport)
}

func NewTransportWithBase(base http.RoundTripper) http.RoundTripper {
	return &relayTransport{base: base}
}
