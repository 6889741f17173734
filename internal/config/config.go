package config

import "time"

// Config is the root client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Billing BillingConfig `yaml:"billing"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig holds remote API settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout"  env:"API_TIMEOUT"  env-default:"10s"`
}

// BillingConfig holds the payment provider's price identifiers.
type BillingConfig struct {
	PremiumPriceID    string `yaml:"premium_price_id"    env:"BILLING_PREMIUM_PRICE_ID"    env-required:"true"`
	EnterprisePriceID string `yaml:"enterprise_price_id" env:"BILLING_ENTERPRISE_PRICE_ID" env-required:"true"`
}

// SessionConfig holds local session persistence settings. An empty path
// resolves to ~/.cyclesync/session.json during load.
type SessionConfig struct {
	Path string `yaml:"path" env:"SESSION_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
