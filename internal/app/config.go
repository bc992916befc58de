package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the portal.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// FreightAPIURL is the backend that owns every business rule the
	// portal renders.
	FreightAPIURL     string        `envconfig:"FREIGHT_API_URL" default:"http://127.0.0.1:9000"`
	FreightAPITimeout time.Duration `envconfig:"FREIGHT_API_TIMEOUT" default:"20s"`

	// IdentityURL is the external identity provider's base URL.
	IdentityURL string `envconfig:"IDENTITY_URL" default:"http://127.0.0.1:9100"`

	// LoginPortalURL is where expired or rejected sessions are sent.
	// Defaults to the portal's own login screen; deployments behind a
	// central SSO portal point it there instead.
	LoginPortalURL string `envconfig:"LOGIN_PORTAL_URL" default:"/auth/login"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.FreightAPIURL == "" {
		return nil, errors.New("freight api url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
