package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/fetch/core/validator"
	"github.com/kochabx/fetch/log"
)

// Config loads a target struct and keeps it current.
type Config struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	path     string
	watch    bool
	onChange []func()
}

// New creates a Config for target. Without WithLoader or WithPath the
// loader reads "config.yaml" from the working directory.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		if c.path != "" {
			c.loader = NewFileLoaderFromPath(c.path, c.viper, c.validate)
		} else {
			c.loader = NewFileLoader("config.yaml", []string{"."}, c.viper, c.validate)
		}
	}

	return c
}

// Load reads the configuration and, when watching is enabled, starts
// reloading it on change.
func (c *Config) Load() error {
	if err := c.Reload(); err != nil {
		return err
	}
	if c.watch {
		return c.Watch()
	}
	return nil
}

// Reload reads the configuration again.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader.Load(c.target)
}

// Read runs fn with the target under the read lock.
func (c *Config) Read(fn func(target any)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.target)
}

// Watch reloads the configuration on every change reported by the loader.
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
		for _, fn := range c.onChange {
			fn()
		}
	})
}

// GetViper returns the viper instance backing the default loader.
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
