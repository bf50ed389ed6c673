package plugin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/rest-server/internal/logging"
)

func init() {
	MustRegister(Definition{
		Key:         "accesslog",
		Description: "Writes one structured log line per request",
		Priority:    30,
		Register: func(host Host) error {
			host.App().Use(accessLogMiddleware(host))
			return nil
		},
	})
}

func accessLogMiddleware(host Host) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		path := c.Path()

		err := c.Next()

		status := responseStatus(c, err)
		level := "info"
		if status >= fiber.StatusInternalServerError {
			level = "error"
		}
		fields := logging.RequestFields(RequestID(c), method, path, status, time.Since(start).Milliseconds())
		_ = host.Log(level, "http", "request completed", fields)
		return err
	}
}

// responseStatus 在 handler 返回错误时按 fiber.Error 推断最终状态码。
func responseStatus(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
