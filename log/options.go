package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/kochabx/fetch/log/desensitize"
)

// Option 日志选项
type Option func(*options)

type options struct {
	level  *zerolog.Level
	caller bool
	hook   *desensitize.Hook
	out    io.Writer
}

// WithLevel 设置日志级别
func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = &level
	}
}

// WithCaller 输出调用位置
func WithCaller() Option {
	return func(o *options) {
		o.caller = true
	}
}

// WithDesensitize 开启脱敏
func WithDesensitize(hook *desensitize.Hook) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// WithWriter 替换默认的控制台输出
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}
