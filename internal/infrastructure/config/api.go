package config

import "time"

// APIConfig holds FIO data-fetch client configuration
type APIConfig struct {
	// Base URL of the FIO REST API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// API key sent in the Authorization header (optional for public data)
	APIKey string `mapstructure:"api_key"`

	// Username whose ships/flights/storage/contracts are fetched
	Username string `mapstructure:"username"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout"`

	// Rate limit settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry settings
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds client-side rate limiting configuration
type RateLimitConfig struct {
	// Requests per second
	Requests float64 `mapstructure:"requests" validate:"min=0"`

	// Burst size
	Burst int `mapstructure:"burst" validate:"min=0"`
}

// RetryConfig holds request retry configuration
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
