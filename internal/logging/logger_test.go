package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/any-hub/rest-server/internal/config"
)

func TestConfigureDefaultsToStdout(t *testing.T) {
	logger, err := InitLogger("info", config.LogConfig{})
	if err != nil {
		t.Fatalf("配置失败: %v", err)
	}
	if logger.Base().Out != os.Stdout {
		t.Fatalf("未指定文件时应输出到 stdout")
	}
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := InitLogger("verbose", config.LogConfig{}); err == nil {
		t.Fatalf("未知级别应返回错误")
	}
}

func TestInitLoggerFallbackOnPermissionDenied(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("设置目录权限失败: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	cfg := config.LogConfig{FilePath: filepath.Join(blocked, "sub", "rest-server.log")}
	logger, err := InitLogger("info", cfg)
	if err != nil {
		t.Fatalf("初始化不应失败: %v", err)
	}
	if os.Geteuid() == 0 {
		t.Skip("root 用户不受目录权限限制")
	}
	if logger.Base().Out != os.Stdout {
		t.Fatalf("fallback 时应退回 stdout")
	}
}

func TestConfigureCreatesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rest-server.log")
	logger, err := InitLogger("debug", config.LogConfig{FilePath: path})
	if err != nil {
		t.Fatalf("配置失败: %v", err)
	}
	logger.Info("test", "hello", nil)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("预期创建日志文件: %v", err)
	}
}
