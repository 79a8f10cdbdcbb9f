package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/config"
)

// minSessionSecret is the shortest accepted cookie signing key.
const minSessionSecret = 32

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout int `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CacheMaxAge    int `env:"CACHE_MAX_AGE_SECONDS" envDefault:"300"`

	// Per-client limit on form posts (newsletter, quotations, chat, checkout).
	// Zero RPS disables it.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
	TrustProxy     bool    `env:"TRUST_PROXY" envDefault:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// Session cookie
	SessionCookie string `env:"SESSION_COOKIE_NAME" envDefault:"kranian_session"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"development-only-session-secret-change-me"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE_SECONDS" envDefault:"2592000"`
	SessionSecure bool   `env:"SESSION_SECURE" envDefault:"false"`

	// Redis cart storage. Empty address keeps carts in memory.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CartTTLHours  int    `env:"CART_TTL_HOURS" envDefault:"720"`

	// PostgreSQL newsletter store. Empty URL keeps subscriptions in memory.
	PostgresURL           string `env:"DATABASE_URL" envDefault:""`
	DBMaxConns            int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int    `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int    `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	SlowQueryThresholdMs  int    `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Kafka. No brokers disables event publishing and the worker.
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	WorkerEnabled bool     `env:"WORKER_ENABLED" envDefault:"false"`
	WorkerRetries int      `env:"WORKER_MAX_ATTEMPTS" envDefault:"3"`

	// Payment
	PaymentDelayMs int `env:"PAYMENT_DELAY_MS" envDefault:"1500"`

	// Email collaborator. Empty URL logs messages instead of posting them.
	QuotationWebhookURL string `env:"QUOTATION_WEBHOOK_URL" envDefault:""`
	SenderDelayMs       int    `env:"SENDER_DELAY_MS" envDefault:"1000"`

	// Chat
	ChatBaseURL string `env:"CHAT_API_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	ChatAPIKey  string `env:"CHAT_API_KEY" envDefault:""`
	ChatModel   string `env:"CHAT_MODEL" envDefault:"gemini-pro"`
	ChatTimeout int    `env:"CHAT_TIMEOUT_SECONDS" envDefault:"30"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromMap reads configuration from vars instead of the process environment.
func LoadFromMap(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadFromMap(cfg, vars); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if len(c.SessionSecret) < minSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecret)
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("CART_TTL_HOURS must be positive, got %d", c.CartTTLHours)
	}
	if c.CacheMaxAge < 0 {
		return fmt.Errorf("CACHE_MAX_AGE_SECONDS must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.WorkerEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("WORKER_ENABLED requires KAFKA_BROKERS")
	}
	if c.WorkerRetries < 1 {
		return fmt.Errorf("WORKER_MAX_ATTEMPTS must be at least 1")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	for name, rawURL := range map[string]string{
		"QUOTATION_WEBHOOK_URL": c.QuotationWebhookURL,
		"CHAT_API_BASE_URL":     c.ChatBaseURL,
	} {
		if rawURL == "" {
			continue
		}
		if _, err := url.ParseRequestURI(rawURL); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, rawURL, err)
		}
	}
	return nil
}

// CartTTL is how long an idle cart is kept.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// ChatEnabled reports whether an API key for the chat endpoint is set.
func (c *Config) ChatEnabled() bool {
	return c.ChatAPIKey != ""
}
