package logging

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnsupportedLevel 表示 Log 调用传入了 Logger 不支持的级别名称。
var ErrUnsupportedLevel = errors.New("unsupported log level")

// Logger 以 (sender, message, data) 的形式输出日志，sender 标识日志来源模块。
type Logger struct {
	base    *logrus.Logger
	methods map[string]func(sender, message string, data any)
}

// NewLogger 包装已有的 logrus.Logger，测试中可传入写入 buffer 的实例。
func NewLogger(base *logrus.Logger) *Logger {
	l := &Logger{base: base}
	l.methods = map[string]func(string, string, any){
		"trace":   l.Trace,
		"debug":   l.Debug,
		"info":    l.Info,
		"warn":    l.Warn,
		"warning": l.Warn,
		"error":   l.Error,
	}
	return l
}

// Base 返回底层 logrus.Logger，供需要 WithFields 的调用方使用。
func (l *Logger) Base() *logrus.Logger {
	return l.base
}

func (l *Logger) Trace(sender, message string, data any) {
	l.entry(sender, data).Trace(message)
}

func (l *Logger) Debug(sender, message string, data any) {
	l.entry(sender, data).Debug(message)
}

func (l *Logger) Info(sender, message string, data any) {
	l.entry(sender, data).Info(message)
}

func (l *Logger) Warn(sender, message string, data any) {
	l.entry(sender, data).Warn(message)
}

func (l *Logger) Error(sender, message string, data any) {
	l.entry(sender, data).Error(message)
}

// Log 按名称分派到对应级别的方法，名称需精确匹配；未知级别返回 ErrUnsupportedLevel。
func (l *Logger) Log(level, sender, message string, data any) error {
	method, ok := l.methods[level]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLevel, level)
	}
	method(sender, message, data)
	return nil
}

func (l *Logger) entry(sender string, data any) *logrus.Entry {
	fields := logrus.Fields{}
	if data != nil {
		if extra, ok := data.(logrus.Fields); ok {
			for k, v := range extra {
				fields[k] = v
			}
		} else {
			fields["data"] = data
		}
	}
	// sender 最后写入，data 中的同名键不能覆盖来源。
	for k, v := range SenderFields(sender) {
		fields[k] = v
	}
	return l.base.WithFields(fields)
}
