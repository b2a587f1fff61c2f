// Package config provides configuration settings for the URL admin console.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Backend names accepted by Config.Backend.
const (
	BackendRemote = "remote"
	BackendMemory = "memory"
)

// EnvPrefix is the prefix of environment variables overriding the configuration,
// e.g. URLADMIN_API_BASE_URL.
const EnvPrefix = "URLADMIN"

// Config holds the configuration settings for the application.
type Config struct {
	// APIBaseURL is the fixed base address of the shortening backend.
	APIBaseURL string `mapstructure:"api_base_url" validate:"required,url"`
	// ShortLinkBase prefixes short codes in rendered links. Empty means APIBaseURL.
	ShortLinkBase string `mapstructure:"short_link_base" validate:"omitempty,url"`
	Backend       string `mapstructure:"backend" validate:"oneof=remote memory"`

	SandboxCapacity int `mapstructure:"sandbox_capacity" validate:"gte=0"`
	SandboxSeed     int `mapstructure:"sandbox_seed" validate:"gte=0"`

	ListPageSize int           `mapstructure:"list_page_size" validate:"gt=0"`
	NoticeTTL    time.Duration `mapstructure:"notice_ttl" validate:"gt=0"`

	RateLimit        int           `mapstructure:"rate_limit"`
	RatePeriod       time.Duration `mapstructure:"rate_period"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	ServerPort       string        `mapstructure:"server_port" validate:"required"`
	DisableRateLimit bool          `mapstructure:"disable_rate_limit"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:       "http://localhost:8085",
		Backend:          BackendRemote,
		SandboxCapacity:  1000,
		ListPageSize:     50,
		NoticeTTL:        5 * time.Second,
		RateLimit:        10,
		RatePeriod:       time.Second,
		RequestTimeout:   10 * time.Second,
		ServerPort:       ":3000",
		DisableRateLimit: false,
	}
}

// LinkBase returns the prefix used for rendered short links, without a trailing slash.
func (c *Config) LinkBase() string {
	base := c.ShortLinkBase
	if base == "" {
		base = c.APIBaseURL
	}
	return strings.TrimRight(base, "/")
}

// Load reads the configuration from the optional YAML file at path and from
// URLADMIN_* environment variables, on top of DefaultConfig.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("api_base_url", defaults.APIBaseURL)
	v.SetDefault("short_link_base", defaults.ShortLinkBase)
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("sandbox_capacity", defaults.SandboxCapacity)
	v.SetDefault("sandbox_seed", defaults.SandboxSeed)
	v.SetDefault("list_page_size", defaults.ListPageSize)
	v.SetDefault("notice_ttl", defaults.NoticeTTL)
	v.SetDefault("rate_limit", defaults.RateLimit)
	v.SetDefault("rate_period", defaults.RatePeriod)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("server_port", defaults.ServerPort)
	v.SetDefault("disable_rate_limit", defaults.DisableRateLimit)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed on %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if !c.DisableRateLimit && (c.RateLimit <= 0 || c.RatePeriod <= 0) {
		return errors.New("invalid config: invalid rate limit configuration")
	}
	return nil
}
