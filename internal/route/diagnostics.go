package route

import (
	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/rest-server/internal/plugin"
	"github.com/any-hub/rest-server/internal/version"
)

const (
	HealthPath  = "/-/health"
	RoutesPath  = "/-/routes"
	PluginsPath = "/-/plugins"
)

type healthPayload struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type routesPayload struct {
	Routes []Route `json:"routes"`
}

type pluginsPayload struct {
	Plugins []plugin.Info `json:"plugins"`
}

// registerDiagnostics 暴露 /-/ 诊断接口；/-/routes 读取的是请求时刻的路由表。
func (m *Manager) registerDiagnostics(host Host) error {
	app := host.App()

	if err := m.add(app, fiber.MethodGet, HealthPath, "Liveness check", func(c fiber.Ctx) error {
		return c.JSON(healthPayload{Status: "ok", Version: version.Full()})
	}); err != nil {
		return err
	}

	if err := m.add(app, fiber.MethodGet, RoutesPath, "Registered route table", func(c fiber.Ctx) error {
		return c.JSON(routesPayload{Routes: m.List()})
	}); err != nil {
		return err
	}

	plugins := host.Plugins()
	return m.add(app, fiber.MethodGet, PluginsPath, "Loaded plugins", func(c fiber.Ctx) error {
		return c.JSON(pluginsPayload{Plugins: plugins.List()})
	})
}
