package webhook

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidBody      = errors.New("invalid webhook body")
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMissingSecret    = errors.New("webhook secret is not configured")
	ErrInternalFault    = errors.New("webhook dispatch failed")
)

// SigningMode selects the bytes the processor's HMAC is computed over.
type SigningMode string

const (
	// SigningModeReencoded signs the compact re-serialization of the parsed body.
	SigningModeReencoded SigningMode = "reencoded"
	// SigningModeRaw signs the body exactly as received.
	SigningModeRaw SigningMode = "raw"
)

func (m SigningMode) Validate() error {
	switch m {
	case SigningModeReencoded, SigningModeRaw:
		return nil
	default:
		return fmt.Errorf("invalid webhook signing mode: %q (valid: reencoded, raw)", string(m))
	}
}

type ProcessRequest struct {
	Body      []byte
	Signature string
}

// Ack is returned to the processor for every verified event, known or not.
type Ack struct {
	Message   string    `json:"message"`
	PaymentID string    `json:"payment_id"`
	Type      EventType `json:"type"`
	UserID    *string   `json:"userId"`
}

type Service interface {
	// ProcessWebhook parses and verifies the webhook, then dispatches it by type.
	// Returns ErrInvalidBody if the body is not a JSON webhook event.
	// Returns ErrMissingSecret if no signing secret is configured.
	// Returns ErrMissingSignature if the signature header is empty.
	// Returns ErrInvalidSignature if the signature doesn't match.
	// Returns ErrInternalFault if a handler fails while dispatching.
	ProcessWebhook(ctx context.Context, req ProcessRequest) (Ack, error)
}
