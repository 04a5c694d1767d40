package unleash

import "time"

const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 8
)

type Config struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	Token             string        `mapstructure:"token" validate:"required"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second" validate:"gte=0,lte=100"`
	// Concurrency bounds parallel reads such as per-toggle tag lookups.
	Concurrency int `mapstructure:"concurrency" validate:"gte=0"`
}
