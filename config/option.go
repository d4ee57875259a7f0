package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/fetch/core/validator"
)

// Option configures a Config.
type Option func(*Config)

// WithViper sets the viper instance used by the default loader.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator replaces the validator; nil disables validation.
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the loader.
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithPath loads exactly the file at path.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithWatch enables or disables reloading on file changes.
func WithWatch(enable bool) Option {
	return func(c *Config) {
		c.watch = enable
	}
}

// OnChange registers fn to run after every successful reload.
func OnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = append(c.onChange, fn)
	}
}
