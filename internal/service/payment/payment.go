package payment

import (
	"context"
	"errors"
)

const DefaultCurrency = "COP"

var (
	ErrMissingReference = errors.New("reference is required")
	ErrMissingSecret    = errors.New("signing secret is not configured")
)

// Request is what the client asks to be signed.
type Request struct {
	Amount      Literal `json:"amount"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
	Currency    string  `json:"currency,omitempty"`
	UserID      Literal `json:"userId"`
}

func (r Request) Validate() map[string]string {
	if r.Reference == "" {
		return map[string]string{"reference": "is required"}
	}
	return nil
}

// Payload is submitted by the client to the processor's checkout.
// Reference and OrderID both carry the user reference.
type Payload struct {
	Amount      Literal `json:"amount"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Signature   string  `json:"signature"`
	OrderID     string  `json:"orderId"`
}

type Service interface {
	// Sign builds the signed checkout payload for a payment request.
	// Returns ErrMissingReference if the request has no reference.
	// Returns ErrMissingSecret if no signing secret is configured.
	Sign(ctx context.Context, req Request) (Payload, error)
}
