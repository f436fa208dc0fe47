package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/boldrelay/internal/xerrors"
	"github.com/garrettladley/boldrelay/internal/xhttp"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	pinger Pinger
}

func NewHealth(pinger Pinger) *Health {
	return &Health{pinger: pinger}
}

// HandleHealth handles GET /health requests.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.pinger != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()

		if err := h.pinger.Ping(pingCtx); err != nil {
			xslog.FromContext(ctx).ErrorContext(ctx, "health check failed", xslog.Error(err))
			xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
				xerrors.WithCode(xerrors.CodeUnavailable),
				xerrors.WithMessage("rate limit backend unavailable"),
				xerrors.WithCause(err),
			))
			return
		}
	}

	xhttp.WriteOK(w, map[string]string{"status": "ok"})
}
