package payment

import (
	"context"

	"github.com/garrettladley/boldrelay/internal/xslog"
)

type Signer struct {
	secret string
}

var _ Service = (*Signer)(nil)

func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

func (s *Signer) Sign(ctx context.Context, req Request) (Payload, error) {
	payload, err := Sign(req, s.secret)
	if err != nil {
		return Payload{}, err
	}

	xslog.FromContext(ctx).InfoContext(ctx, "created payment order",
		xslog.OrderGroup(
			payload.OrderID,
			payload.Amount.String(),
			payload.Currency,
			payload.Description,
			req.UserID.String(),
		),
	)

	return payload, nil
}
