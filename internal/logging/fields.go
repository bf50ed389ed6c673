package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// SenderFields 标记日志来源，Logger 的所有方法都会带上该字段。
func SenderFields(sender string) logrus.Fields {
	return logrus.Fields{
		"sender": sender,
	}
}

// RequestFields 提供请求方法/路径/状态码等字段，供访问日志插件复用。
func RequestFields(requestID, method, path string, status int, latencyMS int64) logrus.Fields {
	return logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     status,
		"latency_ms": latencyMS,
	}
}
