package middleware

import (
	"net/http"

	"github.com/garrettladley/boldrelay/internal/xcontext"
	"github.com/garrettladley/boldrelay/internal/xhttp"
	"github.com/google/uuid"
)

type requestIDConfig struct {
	idFunc       func(*http.Request) string
	trustInbound bool
}

type RequestIDOption func(*requestIDConfig)

// WithIDFunc overrides id generation, mostly for tests.
func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(c *requestIDConfig) { c.idFunc = fn }
}

// WithTrustInbound reuses a well-formed inbound X-Request-ID so ids can be
// correlated across a load balancer.
func WithTrustInbound() RequestIDOption {
	return func(c *requestIDConfig) { c.trustInbound = true }
}

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	cfg := &requestIDConfig{
		idFunc: func(_ *http.Request) string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.trustInbound {
				if inbound, err := uuid.Parse(r.Header.Get(xhttp.XRequestID)); err == nil {
					id = inbound.String()
				}
			}
			if id == "" {
				id = cfg.idFunc(r)
			}
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
