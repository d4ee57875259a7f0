package main

import (
	"fmt"

	"github.com/kochabx/fetch/core/validator"
	"github.com/kochabx/fetch/fetch"
	"github.com/kochabx/fetch/log"
	"github.com/kochabx/fetch/token"
)

// Config is the file the CLI reads with --config.
type Config struct {
	APIURL  string            `json:"api_url" mapstructure:"api_url" validate:"omitempty,url"`
	Headers map[string]string `json:"headers" mapstructure:"headers"`
	Token   TokenConfig       `json:"token" mapstructure:"token"`
	Metrics MetricsConfig     `json:"metrics" mapstructure:"metrics"`
	Log     log.Config        `json:"log" mapstructure:"log"`
}

// MetricsConfig turns on request metrics, written to stderr after the
// request in the Prometheus text format.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Namespace string `json:"namespace" mapstructure:"namespace" default:"fetch" validate:"required"`
}

// TokenConfig selects where authenticated methods get their bearer token.
// Only the section named by Source is used and validated.
type TokenConfig struct {
	Source string            `json:"source" mapstructure:"source" default:"none" validate:"oneof=none static jwt redis"`
	Static string            `json:"static" mapstructure:"static"`
	JWT    token.JWTConfig   `json:"jwt" mapstructure:"jwt" validate:"-"`
	Redis  token.RedisConfig `json:"redis" mapstructure:"redis" validate:"-"`
}

// provider builds the configured source. release frees whatever the source
// holds open.
func (c *TokenConfig) provider() (tp fetch.TokenProvider, release func(), err error) {
	release = func() {}

	switch c.Source {
	case "", "none":
		return nil, release, nil
	case "static":
		return token.Static(c.Static), release, nil
	case "jwt":
		p, err := token.NewJWT(c.JWT)
		if err != nil {
			return nil, release, err
		}
		return p, release, nil
	case "redis":
		if err := validator.Validate.Struct(&c.Redis); err != nil {
			return nil, release, fmt.Errorf("token.redis: %w", err)
		}
		p := token.NewRedis(c.Redis.Client(), c.Redis.Key)
		return p, func() { _ = p.Close() }, nil
	default:
		return nil, release, fmt.Errorf("unknown token source %q", c.Source)
	}
}
