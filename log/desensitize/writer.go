package desensitize

import (
	"io"
)

// Writer 包装 writer 以支持脱敏
type Writer struct {
	writer io.Writer
	hook   *Hook
}

// NewWriter 创建脱敏 writer，w 与 hook 均不能为空
func NewWriter(w io.Writer, hook *Hook) *Writer {
	if w == nil {
		panic("writer cannot be nil")
	}
	if hook == nil {
		panic("hook cannot be nil")
	}
	return &Writer{writer: w, hook: hook}
}

// Write 实现 io.Writer 接口，成功时返回 len(p)
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.hook.RuleCount() == 0 {
		return w.writer.Write(p)
	}

	text := string(p)
	masked := w.hook.Desensitize(text)
	if masked == text {
		return w.writer.Write(p)
	}

	if _, err := io.WriteString(w.writer, masked); err != nil {
		return 0, err
	}
	return len(p), nil
}
