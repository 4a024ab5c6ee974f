package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override
const EnvPrefix = "NORTHWIND"

// Config holds the runtime settings of the service
type Config struct {
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	Bind        string `mapstructure:"bind" validate:"omitempty,ip"`
	AllowSubnet string `mapstructure:"allow-subnet" validate:"omitempty,cidr"`

	DBPath       string `mapstructure:"db" validate:"required"`
	DBMaxConns   int    `mapstructure:"db-max-conns" validate:"min=1"`
	LogLevel     string `mapstructure:"log-level" validate:"oneof=trace debug info warn error"`
	LogFile      string `mapstructure:"log-file"`
	LogMaxSizeMB int    `mapstructure:"log-max-size-mb" validate:"min=0"`
	LogBackups   int    `mapstructure:"log-max-backups" validate:"min=0"`
	LogMaxAge    int    `mapstructure:"log-max-age-days" validate:"min=0"`
	LogCompress  bool   `mapstructure:"log-compress"`

	Timeouts TimeoutConfig `mapstructure:",squash"`

	// RateLimit is the number of requests per minute allowed per client IP; 0 disables it
	RateLimit int `mapstructure:"rate-limit" validate:"min=0"`

	// MaintenanceSchedule is a cron expression for PRAGMA optimize; empty disables it
	MaintenanceSchedule string `mapstructure:"maintenance-schedule" validate:"omitempty,cron"`
}

// Address returns the listen address for the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// RegisterFlags defines every configuration flag on fs with its default
func RegisterFlags(fs *pflag.FlagSet) {
	timeouts := DefaultTimeoutConfig()

	fs.IntP("port", "p", 8000, "HTTP server port")
	fs.StringP("bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	fs.StringP("allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	fs.StringP("db", "d", "./northwind.db", "SQLite database path")
	fs.Int("db-max-conns", 10, "Maximum open database connections")

	fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	fs.String("log-file", "", "Also write logs to this file, rotated by size")
	fs.Int("log-max-size-mb", 50, "Maximum log file size before rotation")
	fs.Int("log-max-backups", 5, "Rotated log files to keep")
	fs.Int("log-max-age-days", 30, "Days to keep rotated log files")
	fs.Bool("log-compress", true, "Compress rotated log files")

	fs.Duration("read-timeout", timeouts.Read, "Timeout for reading a request")
	fs.Duration("idle-timeout", timeouts.Idle, "Keep-alive timeout between requests")
	fs.Duration("request-timeout", timeouts.Request, "Timeout for handling a request")
	fs.Duration("shutdown-timeout", timeouts.Shutdown, "Grace period for in-flight requests on shutdown")

	fs.Int("rate-limit", 0, "Requests per minute allowed per client IP (0 disables)")
	fs.String("maintenance-schedule", "", "Cron schedule for database optimization (e.g., \"0 3 * * *\")")
}

// Load builds the configuration from flags, NORTHWIND_* environment variables and defaults.
// Flags explicitly set on the command line win over the environment.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its rules
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("cron", validCron); err != nil {
		return fmt.Errorf("failed to register cron validation: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// validCron accepts standard five-field cron expressions and descriptors like @daily
func validCron(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}
