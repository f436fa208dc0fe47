package handler

import (
	"errors"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/boldrelay/internal/service/payment"
	"github.com/garrettladley/boldrelay/internal/validator"
	"github.com/garrettladley/boldrelay/internal/xerrors"
	"github.com/garrettladley/boldrelay/internal/xhttp"
)

const maxPaymentBodySize = 64 << 10

type Payment struct {
	service payment.Service
}

func NewPayment(service payment.Service) *Payment {
	return &Payment{service: service}
}

// HandleCreatePayment handles POST /api/create-payment requests.
func (h *Payment) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req payment.Request
	if err := go_json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPaymentBodySize)).Decode(&req); err != nil {
		xerrors.WriteError(ctx, w, xerrors.InvalidBody(xerrors.WithCause(err)))
		return
	}

	if verr := validator.Validate(req); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	payload, err := h.service.Sign(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingSecret):
			xerrors.WriteError(ctx, w, xerrors.Config(xerrors.WithCause(err)))
		case errors.Is(err, payment.ErrMissingReference):
			xerrors.WriteError(ctx, w, xerrors.Validation(map[string]string{"reference": "is required"}))
		default:
			xerrors.WriteError(ctx, w, xerrors.InternalFault(xerrors.WithCause(err)))
		}
		return
	}

	xhttp.WriteOK(w, payload)
}
