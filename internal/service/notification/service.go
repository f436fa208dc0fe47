package notification

import (
	"context"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/boldrelay/internal/client/bold"
	"github.com/garrettladley/boldrelay/internal/xslog"
)

type Proxy struct {
	client *bold.Client
}

var _ Service = (*Proxy)(nil)

func NewProxy(client *bold.Client) *Proxy {
	return &Proxy{client: client}
}

func (p *Proxy) Lookup(ctx context.Context, paymentID string, isExternalReference bool) (go_json.RawMessage, error) {
	if paymentID == "" {
		return nil, ErrMissingPaymentID
	}

	logger := xslog.FromContext(ctx).With(
		xslog.PaymentID(paymentID),
		xslog.ExternalReference(isExternalReference),
	)

	body, err := p.client.GetNotification(ctx, paymentID, isExternalReference)
	if err != nil {
		if errors.Is(err, bold.ErrMissingAPIKey) {
			return nil, ErrMissingAPIKey
		}

		var apiErr *bold.APIError
		if errors.As(err, &apiErr) {
			logger.WarnContext(ctx, "notification lookup rejected upstream",
				xslog.UpstreamStatus(apiErr.StatusCode),
			)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	logger.DebugContext(ctx, "notification lookup succeeded")
	return body, nil
}
