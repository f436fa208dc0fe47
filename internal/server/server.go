package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/boldrelay/internal/client/bold"
	"github.com/garrettladley/boldrelay/internal/metrics"
	"github.com/garrettladley/boldrelay/internal/server/handler"
	servermw "github.com/garrettladley/boldrelay/internal/server/middleware"
	"github.com/garrettladley/boldrelay/internal/service/notification"
	"github.com/garrettladley/boldrelay/internal/service/payment"
	"github.com/garrettladley/boldrelay/internal/service/webhook"
	"github.com/garrettladley/boldrelay/internal/storage"
	"github.com/garrettladley/boldrelay/internal/xhttp/middleware"
)

type Deps struct {
	Logger  *slog.Logger
	Backend storage.Backend
	// Handlers receives verified webhook events. Defaults to logging them.
	Handlers webhook.Handlers
	// HTTPClient overrides the client used for processor lookups.
	HTTPClient *http.Client
	// Metrics, when set, instruments every route and serves GET /metrics.
	Metrics *metrics.Metrics
}

// NewHandler builds the full HTTP surface for cfg.
func NewHandler(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	boldOpts := []bold.Option{bold.WithLogger(logger)}
	if deps.HTTPClient != nil {
		boldOpts = append(boldOpts, bold.WithHTTPClient(deps.HTTPClient))
	}
	boldOpts = append(boldOpts, cfg.boldOptions()...)
	boldClient := bold.New(cfg.Bold.APIKey, boldOpts...)

	handlers := deps.Handlers
	if deps.Metrics != nil {
		handlers = deps.Metrics.Handlers(handlers)
	}

	// Services
	paymentService := payment.NewSigner(cfg.Bold.SecretKey)
	webhookService := webhook.NewProcessor(cfg.Bold.SecretKey, cfg.Bold.WebhookSigningMode, handlers)
	notificationService := notification.NewProxy(boldClient)

	// Handlers
	paymentHandler := handler.NewPayment(paymentService)
	webhookHandler := handler.NewWebhook(webhookService)
	notificationsHandler := handler.NewNotifications(notificationService)

	var pinger handler.Pinger
	if deps.Backend != nil {
		pinger = deps.Backend
	}
	healthHandler := handler.NewHealth(pinger)

	instrument := func(route string, h http.HandlerFunc) http.HandlerFunc {
		if deps.Metrics == nil {
			return h
		}
		return deps.Metrics.Instrument(route, h)
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/create-payment", instrument("create_payment", paymentHandler.HandleCreatePayment))
	apiMux.HandleFunc("GET /api/webhook/notifications/{paymentId}", instrument("notification_lookup", notificationsHandler.HandleLookup))

	var api http.Handler = apiMux
	if deps.Backend != nil {
		api = middleware.Chain(apiMux, servermw.RateLimitWithBackend(deps.Backend))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	// Webhook deliveries skip the per-IP limiter.
	mux.HandleFunc("POST /api/webhook", instrument("webhook", webhookHandler.HandleWebhook))
	mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery,
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
