package config

import (
	"errors"
	"strings"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
// 目录是否存在不在此处检查，交由路由管理器在挂载时处理。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.Server.ShutdownTimeout.DurationValue() < 0 {
		return newFieldError("server.shutdown_timeout", "不能为负数")
	}
	if c.Log.MaxSize < 0 {
		return newFieldError("log.max_size", "不能为负数")
	}
	if c.Log.MaxBackups < 0 {
		return newFieldError("log.max_backups", "不能为负数")
	}

	seenPrefixes := map[string]struct{}{}
	for i := range c.Server.Static {
		mount := &c.Server.Static[i]
		prefix, err := normalizePrefix(mount.Prefix)
		if err != nil {
			return newFieldError(staticField(i, "prefix"), err.Error())
		}
		if _, exists := seenPrefixes[prefix]; exists {
			return newFieldError(staticField(i, "prefix"), "重复")
		}
		seenPrefixes[prefix] = struct{}{}
		mount.Prefix = prefix

		if strings.TrimSpace(mount.Dir) == "" {
			return newFieldError(staticField(i, "dir"), "不能为空")
		}
	}

	return nil
}

func normalizePrefix(raw string) (string, error) {
	prefix := strings.TrimSpace(raw)
	if prefix == "" {
		return "", errors.New("不能为空")
	}
	if !strings.HasPrefix(prefix, "/") {
		return "", errors.New("必须以 / 开头")
	}
	if strings.HasPrefix(prefix, "/-/") || prefix == "/-" {
		return "", errors.New("/-/ 前缀保留给诊断接口")
	}
	if strings.ContainsAny(prefix, " *:") {
		return "", errors.New("不允许包含空格、通配符或参数")
	}
	if len(prefix) > 1 {
		prefix = strings.TrimSuffix(prefix, "/")
	}
	return prefix, nil
}
