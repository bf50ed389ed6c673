package plugin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var globalRegistry = newRegistry()

type registry struct {
	mu      sync.RWMutex
	plugins map[string]Definition
}

func newRegistry() *registry {
	return &registry{plugins: make(map[string]Definition)}
}

// Register 将插件定义加入全局目录，重复键会返回错误。
func Register(def Definition) error {
	return globalRegistry.register(def)
}

// MustRegister 在注册失败时 panic，适合插件 init() 中调用。
func MustRegister(def Definition) {
	if err := Register(def); err != nil {
		panic(err)
	}
}

// Resolve 返回指定键的插件定义。
func Resolve(key string) (Definition, bool) {
	return globalRegistry.resolve(key)
}

// List 返回按 Priority、键排序的插件定义列表。
func List() []Definition {
	return globalRegistry.list()
}

// Keys 返回所有已注册插件的键值，顺序与 List 一致。
func Keys() []string {
	items := List()
	result := make([]string, len(items))
	for i, def := range items {
		result[i] = def.Key
	}
	return result
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (r *registry) register(def Definition) error {
	key := normalizeKey(def.Key)
	if key == "" {
		return fmt.Errorf("plugin key is required")
	}
	if def.Register == nil {
		return fmt.Errorf("plugin %s: register func is required", key)
	}
	def.Key = key

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[key]; exists {
		return fmt.Errorf("plugin %s already registered", key)
	}
	r.plugins[key] = def
	return nil
}

func (r *registry) resolve(key string) (Definition, bool) {
	normalized := normalizeKey(key)
	if normalized == "" {
		return Definition{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.plugins[normalized]
	return def, ok
}

func (r *registry) list() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.plugins) == 0 {
		return nil
	}

	result := make([]Definition, 0, len(r.plugins))
	for _, def := range r.plugins {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].Key < result[j].Key
	})
	return result
}
