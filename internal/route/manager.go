package route

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/rest-server/internal/plugin"
)

// Host 在 plugin.Host 基础上暴露已加载的插件，供 /-/plugins 输出。
type Host interface {
	plugin.Host
	Plugins() *plugin.Manager
}

// Route 描述一条已注册的路由。
type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Manager 记录某个服务实例注册过的路由，构建后不再变化。
type Manager struct {
	routes []Route
	index  map[string]int
}

// NewManager 注册诊断接口与静态目录挂载。
func NewManager(host Host) (*Manager, error) {
	if host == nil {
		return nil, errors.New("route host is required")
	}

	m := &Manager{index: make(map[string]int)}
	if err := m.registerDiagnostics(host); err != nil {
		return nil, err
	}
	if err := m.registerStatic(host); err != nil {
		return nil, err
	}
	// 插件已自行挂载 handler，这里只补录到路由表。
	for _, ep := range host.Plugins().Endpoints() {
		if err := m.record(ep.Method, ep.Path, ep.Description); err != nil {
			return nil, err
		}
	}

	_ = host.Log("info", "routes", fmt.Sprintf("%d route(s) registered", len(m.routes)), logrus.Fields{
		"static_mounts": len(host.Settings().Static),
	})
	return m, nil
}

func (m *Manager) add(app *fiber.App, method, path, description string, handler fiber.Handler) error {
	if err := m.record(method, path, description); err != nil {
		return err
	}
	app.Add([]string{strings.ToUpper(method)}, path, handler)
	return nil
}

func (m *Manager) record(method, path, description string) error {
	method = strings.ToUpper(method)
	key := routeKey(method, path)
	if _, exists := m.index[key]; exists {
		return fmt.Errorf("duplicate route %s %s", method, path)
	}
	m.index[key] = len(m.routes)
	m.routes = append(m.routes, Route{Method: method, Path: path, Description: description})
	return nil
}

// List 返回已注册路由的副本，按路径、方法排序。
func (m *Manager) List() []Route {
	if m == nil || len(m.routes) == 0 {
		return nil
	}
	result := append([]Route(nil), m.routes...)
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}

// Lookup 按方法与注册路径精确查找路由。
func (m *Manager) Lookup(method, path string) (Route, bool) {
	if m == nil {
		return Route{}, false
	}
	idx, ok := m.index[routeKey(strings.ToUpper(method), path)]
	if !ok {
		return Route{}, false
	}
	return m.routes[idx], true
}

// Len 返回已注册路由数量。
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.routes)
}

func routeKey(method, path string) string {
	return method + " " + path
}
