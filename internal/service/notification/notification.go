package notification

import (
	"context"
	"errors"

	go_json "github.com/goccy/go-json"
)

var (
	ErrMissingAPIKey    = errors.New("api key is not configured")
	ErrMissingPaymentID = errors.New("payment id is required")
	ErrUpstream         = errors.New("upstream lookup failed")
)

type Service interface {
	// Lookup returns the processor's notification record for a payment, unchanged.
	// Returns ErrMissingPaymentID if paymentID is empty.
	// Returns ErrMissingAPIKey if no API key is configured; no request is sent.
	// Returns ErrUpstream wrapping *bold.APIError on a non-2xx upstream response.
	Lookup(ctx context.Context, paymentID string, isExternalReference bool) (go_json.RawMessage, error)
}
