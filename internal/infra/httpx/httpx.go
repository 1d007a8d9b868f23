package httpx

import (
	"errors"
	"net/http"
	"time"
)

// Transport stamps a fixed User-Agent and Accept header on every outgoing request.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Clone so the caller's request headers stay untouched.
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" && t.UserAgent != "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}
	return base.RoundTrip(r)
}

// NewClient builds the HTTP client used for movie API calls.
func NewClient(userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &Transport{
			Base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
			},
			UserAgent: userAgent,
		},
		Timeout: timeout,
	}
}
