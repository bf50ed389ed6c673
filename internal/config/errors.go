package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error，便于 CLI 定位。
func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}

// staticField 用于拼接静态挂载字段路径，输出 server.static[0].dir 形式。
func staticField(idx int, field string) string {
	return fmt.Sprintf("server.static[%d].%s", idx, field)
}

// EnvFileError 表示显式配置的 env 文件无法加载，属于致命启动错误。
type EnvFileError struct {
	Path string
	Err  error
}

func (e *EnvFileError) Error() string {
	return fmt.Sprintf("cannot load env file at %q: %v", e.Path, e.Err)
}

func (e *EnvFileError) Unwrap() error {
	return e.Err
}
