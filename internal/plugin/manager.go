package plugin

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Manager 记录某个服务实例已加载的插件，构建后不再变化。
type Manager struct {
	loaded []Definition
	index  map[string]struct{}
}

// NewManager 按目录顺序加载 Host 配置中启用的插件；未配置时加载全部插件。
// 未知插件键或任一插件注册失败都会返回错误。
func NewManager(host Host) (*Manager, error) {
	if host == nil {
		return nil, errors.New("plugin host is required")
	}

	selected, err := selectDefinitions(globalRegistry, host.Settings().PluginKeys())
	if err != nil {
		return nil, err
	}

	m := &Manager{index: make(map[string]struct{}, len(selected))}
	for _, def := range selected {
		if err := def.Register(host); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", def.Key, err)
		}
		m.loaded = append(m.loaded, def)
		m.index[def.Key] = struct{}{}
		_ = host.Log("debug", "plugins", "plugin registered", logrus.Fields{
			"plugin":   def.Key,
			"priority": def.Priority,
		})
	}
	_ = host.Log("info", "plugins", fmt.Sprintf("%d plugin(s) loaded", len(m.loaded)), nil)
	return m, nil
}

func selectDefinitions(r *registry, keys []string) ([]Definition, error) {
	all := r.list()
	if len(keys) == 0 {
		return all, nil
	}

	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := r.resolve(key); !ok {
			return nil, fmt.Errorf("plugin %s is not registered", key)
		}
		wanted[normalizeKey(key)] = struct{}{}
	}

	result := make([]Definition, 0, len(wanted))
	for _, def := range all {
		if _, ok := wanted[def.Key]; ok {
			result = append(result, def)
		}
	}
	return result, nil
}

// List 返回已加载插件的描述副本，按加载顺序排列。
func (m *Manager) List() []Info {
	if m == nil || len(m.loaded) == 0 {
		return nil
	}
	result := make([]Info, len(m.loaded))
	for i, def := range m.loaded {
		result[i] = def.info()
	}
	return result
}

// Keys 返回已加载插件的键值。
func (m *Manager) Keys() []string {
	if m == nil || len(m.loaded) == 0 {
		return nil
	}
	result := make([]string, len(m.loaded))
	for i, def := range m.loaded {
		result[i] = def.Key
	}
	return result
}

// Endpoints 返回已加载插件声明的全部路由，按加载顺序排列。
func (m *Manager) Endpoints() []Endpoint {
	if m == nil {
		return nil
	}
	var result []Endpoint
	for _, def := range m.loaded {
		result = append(result, def.Endpoints...)
	}
	return result
}

// Has 判断插件是否已加载。
func (m *Manager) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[normalizeKey(key)]
	return ok
}

// Len 返回已加载插件数量。
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.loaded)
}
