package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 所有配置错误都可以用 errors.Is(err, ErrInvalidConfig) 识别
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError 描述一份静态数据（棋盘、单位、关卡）无法使用的原因
// 这类错误在加载阶段是致命的，调用方应中止关卡加载
type ConfigError struct {
	Source string // 来源，如文件路径或 "builtin"
	Field  string // 出错字段，如 "board.height"、"spawns[1].count"
	Reason string
	Err    error // 底层错误（读取/解析失败时非空）
}

func (e *ConfigError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap 同时暴露 ErrInvalidConfig 和底层错误
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

func fieldError(source, field, format string, args ...any) *ConfigError {
	return &ConfigError{Source: source, Field: field, Reason: fmt.Sprintf(format, args...)}
}
