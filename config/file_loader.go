package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kochabx/fetch/core/tag"
	"github.com/kochabx/fetch/core/validator"
	"github.com/kochabx/fetch/errors"
)

// FileLoader loads configuration from a file through viper. Environment
// variables override file values, with "." in keys mapped to "_"
// (log.level -> LOG_LEVEL).
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
}

// NewFileLoader searches paths for the file called name. The extension of
// name selects the format.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(name)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(name), "."))

	return newFileLoader(v, validate)
}

// NewFileLoaderFromPath loads exactly the file at path.
func NewFileLoaderFromPath(path string, v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetConfigFile(path)
	return newFileLoader(v, validate)
}

func newFileLoader(v *viper.Viper, validate validator.Validator) *FileLoader {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{viper: v, validate: validate}
}

// Load applies `default` tags, reads the file, unmarshals it over the
// defaults and validates the result.
func (l *FileLoader) Load(target any) error {
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Wrap(err, 500, "failed to apply defaults")
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, 404, "config file not found")
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.viper.Unmarshal(target, hook); err != nil {
		return errors.Wrap(err, 500, "config parse error")
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Wrap(err, 400, "config validation failed")
		}
	}

	return nil
}

// Watch reloads through callback on every file change event.
func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})
	l.viper.WatchConfig()
	return nil
}
