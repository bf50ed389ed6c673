package plugin

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	contextKeyRequestID = "_restserver_request_id"
)

func init() {
	MustRegister(Definition{
		Key:         "requestid",
		Description: "Assigns a request id and echoes it in X-Request-ID",
		Priority:    10,
		Register: func(host Host) error {
			host.App().Use(requestIDMiddleware())
			return nil
		},
	})
}

// requestIDMiddleware 沿用调用方传入的 X-Request-ID，缺失时生成新的 UUID。
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(contextKeyRequestID, reqID)
		c.Set(HeaderRequestID, reqID)
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the requestid plugin.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
