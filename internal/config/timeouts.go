package config

import "time"

// TimeoutConfig holds the HTTP server timeouts.
type TimeoutConfig struct {
	// Read is the timeout for reading a request including its body. Default: 15s
	Read time.Duration `mapstructure:"read-timeout" validate:"gt=0"`

	// Idle is the keep-alive timeout between requests. Default: 120s
	Idle time.Duration `mapstructure:"idle-timeout" validate:"gt=0"`

	// Request bounds the time a handler may run. Default: 60s
	Request time.Duration `mapstructure:"request-timeout" validate:"gt=0"`

	// Shutdown is the grace period given to in-flight requests. Default: 30s
	Shutdown time.Duration `mapstructure:"shutdown-timeout" validate:"gt=0"`
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Read:     15 * time.Second,
		Idle:     120 * time.Second,
		Request:  60 * time.Second,
		Shutdown: 30 * time.Second,
	}
}
