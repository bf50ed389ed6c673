package plugin

import "github.com/gofiber/fiber/v3/middleware/recover"

// recover 排在 metrics/accesslog 之后注册，panic 先被转换为错误，
// 外层的观测中间件才能统计并记录这些 500。
func init() {
	MustRegister(Definition{
		Key:         "recover",
		Description: "Converts handler panics into 500 responses",
		Priority:    40,
		Register: func(host Host) error {
			host.App().Use(recover.New())
			return nil
		},
	})
}
