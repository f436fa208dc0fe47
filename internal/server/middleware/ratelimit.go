package middleware

import (
	"net/http"

	"github.com/garrettladley/boldrelay/internal/storage"
	"github.com/garrettladley/boldrelay/internal/xerrors"
	"github.com/garrettladley/boldrelay/internal/xhttp"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

const reasonIPRateLimit = "ip_rate_limit"

// RateLimitWithBackend applies IP-based rate limiting.
func RateLimitWithBackend(backend storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := xslog.FromContext(ctx)
			ip := xhttp.GetRequestIP(r)

			result, err := backend.Allow(ctx, ip)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
					xerrors.WithCode(xerrors.CodeUnavailable),
					xerrors.WithMessage("rate limit check failed"),
				))
				return
			}

			if !result.Allowed {
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithMessage("too many requests"),
					xerrors.WithRetryAfter(result.RetryAfter),
					xerrors.WithReason(reasonIPRateLimit),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
