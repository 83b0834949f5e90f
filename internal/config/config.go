package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultSessionSecret is filled in when no secret is configured. It is
// public, so cookies signed with it can be forged.
const DefaultSessionSecret = "change-me"

type Config struct {
	BaseURL string `yaml:"base_url"`

	HTTP struct {
		Address string `yaml:"address"`
		// TrustProxy takes the client address from X-Forwarded-For and
		// X-Real-IP. Enable only behind a proxy that sets them.
		TrustProxy bool `yaml:"trust_proxy"`
	} `yaml:"http"`

	App AppConfig `yaml:"app"`

	Logging struct {
		Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
		Format string `yaml:"format"` // "text" | "json"
	} `yaml:"logging"`

	Debug struct {
		// LogRenders writes an "APP rendered" entry on every render.
		LogRenders *bool `yaml:"log_renders"`
	} `yaml:"debug"`

	Security struct {
		SessionSecret string `yaml:"session_secret"`
		SessionTTL    string `yaml:"session_ttl"`
	} `yaml:"security"`

	RateLimit struct {
		Limit  int    `yaml:"limit"`
		Window string `yaml:"window"`
	} `yaml:"ratelimit"`
}

// AppConfig holds the page title and the default props of the view.
type AppConfig struct {
	Title         string `yaml:"title"`
	Name          string `yaml:"name"`
	InitialNumber int    `yaml:"initial_number"`
}

func (c *Config) Defaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.App.Title == "" {
		c.App.Title = "titleview"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Debug.LogRenders == nil {
		on := true
		c.Debug.LogRenders = &on
	}
	if c.Security.SessionSecret == "" {
		c.Security.SessionSecret = DefaultSessionSecret
	}
	if c.Security.SessionTTL == "" {
		c.Security.SessionTTL = "72h"
	}
	if c.RateLimit.Limit == 0 {
		c.RateLimit.Limit = 60
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := time.ParseDuration(c.Security.SessionTTL); err != nil {
		errs = append(errs, fmt.Errorf("security.session_ttl: %w", err))
	}
	if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
		errs = append(errs, fmt.Errorf("ratelimit.window: %w", err))
	}
	if c.RateLimit.Limit < 0 {
		errs = append(errs, errors.New("ratelimit.limit must not be negative"))
	}
	return errors.Join(errs...)
}

// LogRenders reports whether render diagnostics are enabled.
func (c *Config) LogRenders() bool {
	return c.Debug.LogRenders == nil || *c.Debug.LogRenders
}

// DefaultSecret reports whether the session secret is still the public default.
func (c *Config) DefaultSecret() bool {
	return c.Security.SessionSecret == DefaultSessionSecret
}

// SessionTTL returns the parsed session lifetime.
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Security.SessionTTL)
	return d
}

// RateWindow returns the parsed rate limit window.
func (c *Config) RateWindow() time.Duration {
	d, _ := time.ParseDuration(c.RateLimit.Window)
	return d
}
