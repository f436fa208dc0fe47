package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/garrettladley/boldrelay/internal/service/webhook"
	"github.com/garrettladley/boldrelay/internal/xerrors"
	"github.com/garrettladley/boldrelay/internal/xhttp"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

const (
	HeaderBoldSignature = "X-Bold-Signature"

	maxWebhookBodySize = 1 << 20
)

type Webhook struct {
	service webhook.Service
}

func NewWebhook(service webhook.Service) *Webhook {
	return &Webhook{service: service}
}

// HandleWebhook handles POST /api/webhook requests.
func (h *Webhook) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodySize))
	if err != nil {
		logger.WarnContext(ctx, "failed to read webhook body", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.InvalidBody(xerrors.WithMessage("failed to read request body"), xerrors.WithCause(err)))
		return
	}

	req := webhook.ProcessRequest{
		Body:      body,
		Signature: r.Header.Get(HeaderBoldSignature),
	}

	ack, err := h.service.ProcessWebhook(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrInvalidBody):
			xerrors.WriteError(ctx, w, xerrors.InvalidBody(xerrors.WithCause(err)))
		case errors.Is(err, webhook.ErrMissingSecret):
			xerrors.WriteError(ctx, w, xerrors.Config(xerrors.WithCause(err)))
		case errors.Is(err, webhook.ErrMissingSignature):
			xerrors.WriteError(ctx, w, xerrors.InvalidSignature(xerrors.WithMessage("missing signature")))
		case errors.Is(err, webhook.ErrInvalidSignature):
			xerrors.WriteError(ctx, w, xerrors.InvalidSignature())
		default:
			xerrors.WriteError(ctx, w, xerrors.InternalFault(xerrors.WithCause(err)))
		}
		return
	}

	xhttp.WriteOK(w, ack)
}
