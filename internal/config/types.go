package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// StaticMount 描述一个静态目录挂载，Dir 为相对路径时基于 RootPath 解析。
type StaticMount struct {
	Prefix string `mapstructure:"prefix"`
	Dir    string `mapstructure:"dir"`
}

// ServerConfig 对应配置文件中的 [server] 段。
type ServerConfig struct {
	// EnvPath 指向显式的 .env 文件；为空时从项目根目录加载默认 .env。
	EnvPath string `mapstructure:"env_path"`
	// RootPath 为服务根目录，为空时使用进程工作目录。
	RootPath        string        `mapstructure:"root_path"`
	Plugins         []string      `mapstructure:"plugins"`
	Static          []StaticMount `mapstructure:"static"`
	ShutdownTimeout Duration      `mapstructure:"shutdown_timeout"`
}

// LogConfig 控制日志文件输出与滚动策略，级别由 LOGGING_LEVEL 环境变量决定。
type LogConfig struct {
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Config 是配置文件映射的整体结构。
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// PluginKeys 返回标准化后的插件键列表，空列表表示启用全部内置插件。
func (s ServerConfig) PluginKeys() []string {
	if len(s.Plugins) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Plugins))
	for _, key := range s.Plugins {
		if normalized := strings.ToLower(strings.TrimSpace(key)); normalized != "" {
			keys = append(keys, normalized)
		}
	}
	return keys
}
