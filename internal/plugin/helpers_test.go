package plugin

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/rest-server/internal/config"
)

type fakeHost struct {
	app      *fiber.App
	settings config.ServerConfig

	mu   sync.Mutex
	logs []string
}

func newFakeHost(keys ...string) *fakeHost {
	return &fakeHost{
		app:      fiber.New(),
		settings: config.ServerConfig{Plugins: keys},
	}
}

func (h *fakeHost) App() *fiber.App               { return h.app }
func (h *fakeHost) RootPath() string              { return "." }
func (h *fakeHost) Settings() config.ServerConfig { return h.settings }

func (h *fakeHost) Log(level, sender, message string, _ any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, fmt.Sprintf("%s/%s/%s", level, sender, message))
	return nil
}

func (h *fakeHost) logLines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.logs...)
}

func replaceRegistry(t *testing.T) func() {
	t.Helper()
	prev := globalRegistry
	globalRegistry = newRegistry()
	return func() { globalRegistry = prev }
}
