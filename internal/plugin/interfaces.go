package plugin

import (
	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/rest-server/internal/config"
)

// Host 是插件注册时可见的服务实例视图，由 server.Server 实现。
type Host interface {
	App() *fiber.App
	Log(level, sender, message string, data any) error
	RootPath() string
	Settings() config.ServerConfig
}

// RegisterFunc 将插件挂载到 Host 上，返回错误会中断实例构建。
type RegisterFunc func(Host) error

// Endpoint 声明插件在 Register 中挂载的路由，路由管理器据此补全路由表。
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Definition 记录一个插件的静态信息与注册逻辑。
type Definition struct {
	Key         string
	Description string
	Priority    int
	Endpoints   []Endpoint
	Register    RegisterFunc
}

// Info 是 Definition 去掉注册逻辑后的只读描述，供诊断接口输出。
type Info struct {
	Key         string     `json:"key"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	Endpoints   []Endpoint `json:"endpoints,omitempty"`
}

func (d Definition) info() Info {
	return Info{
		Key:         d.Key,
		Description: d.Description,
		Priority:    d.Priority,
		Endpoints:   append([]Endpoint(nil), d.Endpoints...),
	}
}
