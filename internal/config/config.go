package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment once, in main.
type Config struct {
	// MailtrapToken takes precedence over the SSM parameter when set.
	MailtrapToken   string        `envconfig:"MAILTRAP_API_TOKEN"`
	ParamPrefix     string        `envconfig:"PARAM_PREFIX" default:"/tekmakon-site"`
	MailtrapBaseURL string        `envconfig:"MAILTRAP_BASE_URL" default:"https://send.api.mailtrap.io"`
	MailTimeout     time.Duration `envconfig:"MAIL_TIMEOUT" default:"10s"`

	MailFromAddress string `envconfig:"MAIL_FROM_ADDRESS" default:"hello@4wardph.com"`
	MailFromName    string `envconfig:"MAIL_FROM_NAME" default:"TekMakon Contact Form"`
	MailToAddress   string `envconfig:"MAIL_TO_ADDRESS" default:"tekmakon2025@gmail.com"`
	MailCategory    string `envconfig:"MAIL_CATEGORY" default:"Contact Form"`
	Timezone        string `envconfig:"TIMEZONE" default:"Asia/Manila"`

	ChatMinLatency time.Duration `envconfig:"CHAT_MIN_LATENCY" default:"500ms"`
	AllowedOrigin  string        `envconfig:"ALLOWED_ORIGIN" default:"*"`

	DevAddr      string `envconfig:"DEV_ADDR" default:":8080"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// Load parses the environment into a Config and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.MailtrapToken) == "" && strings.TrimSpace(c.ParamPrefix) == "" {
		return errors.New("config: MAILTRAP_API_TOKEN or PARAM_PREFIX must be set")
	}
	if strings.TrimSpace(c.MailFromAddress) == "" || strings.TrimSpace(c.MailToAddress) == "" {
		return errors.New("config: MAIL_FROM_ADDRESS and MAIL_TO_ADDRESS must not be empty")
	}
	if c.ChatMinLatency < 0 {
		return errors.New("config: CHAT_MIN_LATENCY must not be negative")
	}
	if c.MailTimeout <= 0 {
		return errors.New("config: MAIL_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("config: MAX_BODY_BYTES must be positive")
	}
	return nil
}

// Location resolves Timezone, falling back to UTC for an empty value.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TokenParameter is the SSM parameter holding the Mailtrap token.
func (c Config) TokenParameter() string {
	return strings.TrimRight(strings.TrimSpace(c.ParamPrefix), "/") + "/mailtrap-token"
}

// UseParamStore reports whether the token must be fetched from SSM.
func (c Config) UseParamStore() bool {
	return strings.TrimSpace(c.MailtrapToken) == ""
}
