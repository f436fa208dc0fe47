package server

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/boldrelay/internal/client/bold"
	appenv "github.com/garrettladley/boldrelay/internal/env"
	"github.com/garrettladley/boldrelay/internal/service/webhook"
)

type Config struct {
	Port      string             `env:"PORT" envDefault:"3001"`
	Host      string             `env:"HOST"`
	Env       appenv.Environment `env:"ENV" envDefault:"development"`
	Bold      Bold               `envPrefix:"BOLD_"`
	RateLimit RateLimit          `envPrefix:"RATE_"`
	Redis     Redis              `envPrefix:"REDIS_"`
	Metrics   bool               `env:"METRICS_ENABLED" envDefault:"true"`
}

// Bold holds the processor credentials. Both keys may be empty; the
// operations that need them report a configuration error per request.
type Bold struct {
	SecretKey          string              `env:"SECRET_KEY"`
	APIKey             string              `env:"API_KEY"`
	NotificationsURL   string              `env:"NOTIFICATIONS_URL" envDefault:"https://integrations.api.bold.co/payments/webhook/notifications"`
	LookupTimeout      time.Duration       `env:"LOOKUP_TIMEOUT" envDefault:"10s"`
	WebhookSigningMode webhook.SigningMode `env:"WEBHOOK_SIGNING_MODE" envDefault:"reencoded"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

type Redis struct {
	URL string `env:"URL"`
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c Config) Validate() error {
	if err := c.Env.Validate(); err != nil {
		return err
	}
	if err := c.Bold.WebhookSigningMode.Validate(); err != nil {
		return err
	}
	if c.Bold.LookupTimeout <= 0 {
		return fmt.Errorf("BOLD_LOOKUP_TIMEOUT must be positive, got %s", c.Bold.LookupTimeout)
	}
	if c.RateLimit.Limit <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}
	if c.Env.IsProduction() && c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required in production")
	}
	return nil
}

func (c Config) boldOptions() []bold.Option {
	return []bold.Option{
		bold.WithNotificationsURL(c.Bold.NotificationsURL),
		bold.WithTimeout(c.Bold.LookupTimeout),
	}
}

func ReadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
