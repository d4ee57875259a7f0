// Package desensitize 日志脱敏
package desensitize

import (
	"slices"
	"sync"
)

// Hook 脱敏钩子，规则按添加顺序执行
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewHook 创建新的脱敏钩子
func NewHook(rules ...Rule) *Hook {
	h := &Hook{}
	h.AddRule(rules...)
	return h
}

// AddRule 添加脱敏规则，同名规则原位替换
func (h *Hook) AddRule(rules ...Rule) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if i := h.index(rule.Name()); i >= 0 {
			h.rules[i] = rule
			continue
		}
		h.rules = append(h.rules, rule)
	}
}

// AddContentRule 添加基于内容匹配的脱敏规则
func (h *Hook) AddContentRule(name, pattern, replacement string) error {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// AddFieldRule 添加基于字段名匹配的脱敏规则
func (h *Hook) AddFieldRule(name, fieldName, pattern, replacement string) error {
	rule, err := NewFieldRule(name, fieldName, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// RemoveRule 移除脱敏规则
func (h *Hook) RemoveRule(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.index(name)
	if i < 0 {
		return false
	}
	h.rules = slices.Delete(h.rules, i, i+1)
	return true
}

// EnableRule 启用规则
func (h *Hook) EnableRule(name string) bool {
	return h.setEnabled(name, true)
}

// DisableRule 禁用规则（不移除）
func (h *Hook) DisableRule(name string) bool {
	return h.setEnabled(name, false)
}

func (h *Hook) setEnabled(name string, enabled bool) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i := h.index(name)
	if i < 0 {
		return false
	}
	h.rules[i].SetEnabled(enabled)
	return true
}

// Rules 按执行顺序列出所有规则名称
func (h *Hook) Rules() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.rules))
	for _, r := range h.rules {
		names = append(names, r.Name())
	}
	return names
}

// RuleCount 返回规则数量
func (h *Hook) RuleCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Desensitize 对字符串进行脱敏处理
func (h *Hook) Desensitize(s string) string {
	if s == "" {
		return s
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, rule := range h.rules {
		if rule.Enabled() {
			s = rule.Process(s)
		}
	}
	return s
}

// index 调用方需持有 mu
func (h *Hook) index(name string) int {
	return slices.IndexFunc(h.rules, func(r Rule) bool { return r.Name() == name })
}
