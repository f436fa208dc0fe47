package bold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/boldrelay/internal/xhttp"
)

const (
	DefaultNotificationsURL = "https://integrations.api.bold.co/payments/webhook/notifications"
	DefaultTimeout          = 10 * time.Second

	queryExternalReference = "is_external_reference"
	apiKeyScheme           = "x-api-key "
	maxResponseSize        = 1 << 20
)

var (
	ErrMissingAPIKey   = errors.New("bold api key is not configured")
	ErrInvalidResponse = errors.New("bold api returned a non-JSON response")
)

type Client struct {
	apiKey           string
	notificationsURL string
	httpClient       *http.Client
	logger           *slog.Logger
}

type Option func(*Client)

// WithHTTPClient uses a copy of c, so later options never modify the
// caller's client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		cp := *c
		client.httpClient = &cp
	}
}

func WithNotificationsURL(u string) Option {
	return func(client *Client) { client.notificationsURL = strings.TrimRight(u, "/") }
}

func WithTimeout(d time.Duration) Option {
	return func(client *Client) { client.httpClient.Timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:           apiKey,
		notificationsURL: DefaultNotificationsURL,
		httpClient:       xhttp.NewHTTPClient(xhttp.WithTimeout(DefaultTimeout)),
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method string, u string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(xhttp.Authorization, apiKeyScheme+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "bold api response",
		slog.String("method", method),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !go_json.Valid(body) {
		return nil, fmt.Errorf("%w: %.200s", ErrInvalidResponse, body)
	}
	return body, nil
}

func (c *Client) notificationURL(paymentID string, isExternalReference bool) string {
	u := c.notificationsURL + "/" + url.PathEscape(paymentID)
	if isExternalReference {
		q := url.Values{}
		q.Set(queryExternalReference, "true")
		u += "?" + q.Encode()
	}
	return u
}
