package bold

import (
	"context"
	"net/http"

	go_json "github.com/goccy/go-json"
)

// GetNotification fetches the processor's notification record for a payment.
// With isExternalReference the id is read as the merchant reference instead of
// the processor payment id. The response body is returned untouched.
func (c *Client) GetNotification(ctx context.Context, paymentID string, isExternalReference bool) (go_json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, c.notificationURL(paymentID, isExternalReference))
	if err != nil {
		return nil, err
	}
	return go_json.RawMessage(body), nil
}
