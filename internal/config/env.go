package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultLoggingLevel = "info"
	DefaultHostURL      = "http://localhost:8000"
	DefaultHost         = "localhost"
	DefaultPort         = 8000

	defaultEnvFile = ".env"
)

// Env 汇总服务启动时读取的环境变量。
type Env struct {
	LoggingLevel string `envconfig:"LOGGING_LEVEL" default:"info"`
	HostURL      string `envconfig:"API_SERVER_HOST_URL" default:"http://localhost:8000"`
}

// EnvFileResult 描述 env 文件加载结果，供启动日志输出。
type EnvFileResult struct {
	Path     string
	Explicit bool
	Loaded   bool
	// Err 仅在默认 .env 解析失败时记录，不会中断启动。
	Err error
}

// LoadEnvFile 将 env 文件中的变量注入进程环境，已存在的变量不会被覆盖。
// 显式配置的 server.env_path 加载失败时返回 *EnvFileError；
// 未配置时尝试加载工作目录下的 .env，文件缺失或解析失败都不视为错误。
func LoadEnvFile(s ServerConfig) (EnvFileResult, error) {
	if path := strings.TrimSpace(s.EnvPath); path != "" {
		if err := godotenv.Load(path); err != nil {
			return EnvFileResult{Path: path, Explicit: true}, &EnvFileError{Path: path, Err: err}
		}
		return EnvFileResult{Path: path, Explicit: true, Loaded: true}, nil
	}

	result := EnvFileResult{Path: defaultEnvFile}
	if err := godotenv.Load(defaultEnvFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			result.Err = err
		}
		return result, nil
	}
	result.Loaded = true
	return result, nil
}

// LoadEnv 解析环境变量，空字符串与未设置同样回退到默认值。
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("解析环境变量失败: %w", err)
	}
	if strings.TrimSpace(env.LoggingLevel) == "" {
		env.LoggingLevel = DefaultLoggingLevel
	}
	if strings.TrimSpace(env.HostURL) == "" {
		env.HostURL = DefaultHostURL
	}
	return env, nil
}

// BindAddress 从 API_SERVER_HOST_URL 中解析监听的 host 与端口。
// URL 未给出 host/端口时分别回退到 localhost 与 8000。
func (e Env) BindAddress() (string, int, error) {
	raw := strings.TrimSpace(e.HostURL)
	if raw == "" {
		raw = DefaultHostURL
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", 0, fmt.Errorf("无法解析 API_SERVER_HOST_URL: %w", err)
	}

	host := DefaultHost
	if hostname := parsed.Hostname(); hostname != "" {
		host = hostname
	}

	port := DefaultPort
	if rawPort := parsed.Port(); rawPort != "" {
		port, err = strconv.Atoi(rawPort)
		if err != nil || port < 0 || port > 65535 {
			return "", 0, newFieldError("API_SERVER_HOST_URL", "端口必须在 0-65535")
		}
	}
	return host, port, nil
}
