package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/fetch/core/tag"
	"github.com/kochabx/fetch/log/desensitize"
	"github.com/kochabx/fetch/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	hook   *desensitize.Hook
	closer io.Closer
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// Hook 返回脱敏钩子，未开启脱敏时为 nil
func (l *Logger) Hook() *desensitize.Hook {
	return l.hook
}

// Close 关闭文件 writer
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func newLogger(w io.Writer, opts ...Option) *Logger {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.out != nil {
		w = o.out
	}
	if o.hook != nil {
		w = desensitize.NewWriter(w, o.hook)
	}

	ctx := zerolog.New(w).With().Timestamp()
	if o.caller {
		ctx = ctx.Caller()
	}
	zl := ctx.Logger()
	if o.level != nil {
		zl = zl.Level(*o.level)
	}

	return &Logger{Logger: zl, hook: o.hook}
}

// New 创建控制台日志记录器
func New(opts ...Option) *Logger {
	return newLogger(writer.Console(), opts...)
}

// Nop 返回丢弃所有日志的记录器
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// NewFile 创建文件日志记录器（支持轮转）
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(&c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(fw, opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// NewMulti 创建同时输出到文件和控制台的日志记录器
func NewMulti(c FileConfig, opts ...Option) (*Logger, error) {
	fw, err := fileWriter(&c)
	if err != nil {
		return nil, err
	}

	logger := newLogger(zerolog.MultiLevelWriter(fw, writer.Console()), opts...)
	if closer, ok := fw.(io.Closer); ok {
		logger.closer = closer
	}
	return logger, nil
}

// FromConfig 根据配置创建日志记录器
// Desensitize 开启时使用内置脱敏规则；默认值由配置加载器填充，Level 或 Output 为空时输出 info 到控制台
func FromConfig(c Config, opts ...Option) (*Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	base := []Option{WithLevel(level)}
	if c.Desensitize {
		base = append(base, WithDesensitize(desensitize.NewHook(desensitize.BuiltinRules()...)))
	}
	if c.Caller {
		base = append(base, WithCaller())
	}
	opts = append(base, opts...)

	switch c.Output {
	case "file":
		return NewFile(c.File, opts...)
	case "multi":
		return NewMulti(c.File, opts...)
	default:
		return New(opts...), nil
	}
}

// ParseLevel 解析日志级别，空字符串为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func fileWriter(c *FileConfig) (io.Writer, error) {
	if err := tag.ApplyDefaults(c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(c.toWriterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}
	return w, nil
}
