package route

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/sirupsen/logrus"
)

// registerStatic 为每个 server.static 挂载注册 GET 路由，相对目录基于 RootPath 解析。
func (m *Manager) registerStatic(host Host) error {
	for i, mount := range host.Settings().Static {
		dir := resolveDir(host.RootPath(), mount.Dir)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("server.static[%d]: %w", i, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("server.static[%d]: %s is not a directory", i, dir)
		}

		path := mountPath(mount.Prefix)
		if err := m.add(host.App(), fiber.MethodGet, path, "Static files from "+dir, static.New(dir)); err != nil {
			return err
		}
		_ = host.Log("debug", "routes", "static mount registered", logrus.Fields{
			"prefix": mount.Prefix,
			"dir":    dir,
		})
	}
	return nil
}

func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

func mountPath(prefix string) string {
	if prefix == "/" {
		return "/*"
	}
	return prefix + "/*"
}
