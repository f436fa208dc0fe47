package handler

import (
	"errors"
	"net/http"

	"github.com/garrettladley/boldrelay/internal/client/bold"
	"github.com/garrettladley/boldrelay/internal/service/notification"
	"github.com/garrettladley/boldrelay/internal/xerrors"
	"github.com/garrettladley/boldrelay/internal/xhttp"
)

const queryExternalReference = "is_external_reference"

type Notifications struct {
	service notification.Service
}

func NewNotifications(service notification.Service) *Notifications {
	return &Notifications{service: service}
}

// HandleLookup handles GET /api/webhook/notifications/{paymentId} requests.
// Query params: is_external_reference (only the exact value "true" enables it)
func (h *Notifications) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paymentID := r.PathValue("paymentId")
	isExternalReference := r.URL.Query().Get(queryExternalReference) == "true"

	body, err := h.service.Lookup(ctx, paymentID, isExternalReference)
	if err != nil {
		var apiErr *bold.APIError
		switch {
		case errors.Is(err, notification.ErrMissingAPIKey):
			xerrors.WriteError(ctx, w, xerrors.Config(xerrors.WithCause(err)))
		case errors.Is(err, notification.ErrMissingPaymentID):
			xerrors.WriteError(ctx, w, xerrors.Validation(map[string]string{"paymentId": "is required"}))
		case errors.As(err, &apiErr):
			xerrors.WriteError(ctx, w, xerrors.Upstream(xerrors.WithMessage(apiErr.Message), xerrors.WithCause(err)))
		default:
			xerrors.WriteError(ctx, w, xerrors.Upstream(xerrors.WithCause(err)))
		}
		return
	}

	xhttp.WriteRawJSON(w, http.StatusOK, body)
}
