package server

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/rest-server/internal/config"
	"github.com/any-hub/rest-server/internal/logging"
	"github.com/any-hub/rest-server/internal/plugin"
	"github.com/any-hub/rest-server/internal/route"
)

// PluginFactory builds the plugin manager for one Server.
type PluginFactory func(plugin.Host) (*plugin.Manager, error)

// RouteFactory builds the route manager for one Server.
type RouteFactory func(route.Host) (*route.Manager, error)

// Options controls how New assembles the Server.
type Options struct {
	// Config 为 nil 时使用全部默认值。
	Config *config.Config
	// Stdout 接收 logger 初始化之前的 env 加载提示，默认 os.Stdout。
	Stdout        io.Writer
	PluginFactory PluginFactory
	RouteFactory  RouteFactory
}

// Server is the bootstrap instance: it owns the logger, the Handle, and the
// plugin and route managers, all created once in New and never replaced.
type Server struct {
	cfg      config.Config
	env      config.Env
	rootPath string

	logger  *logging.Logger
	handle  *Handle
	plugins *plugin.Manager
	routes  *route.Manager
	events  *emitter
}

// New 按 env 文件 → 环境变量 → logger → Handle → plugins → routes 的顺序构建实例。
// 显式 env_path 加载失败时返回 *config.EnvFileError，此时不会创建 Handle。
func New(opts Options) (*Server, error) {
	cfg := config.Config{}
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	pluginFactory := opts.PluginFactory
	if pluginFactory == nil {
		pluginFactory = plugin.NewManager
	}
	routeFactory := opts.RouteFactory
	if routeFactory == nil {
		routeFactory = route.NewManager
	}

	if cfg.Server.EnvPath != "" {
		fmt.Fprintf(stdout, "[ENV] Loading config path from %s\n", cfg.Server.EnvPath)
	} else {
		fmt.Fprintln(stdout, "[ENV] Loading config path from root project folder")
	}
	envFile, err := config.LoadEnvFile(cfg.Server)
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	logger, err := logging.InitLogger(env.LoggingLevel, cfg.Log)
	if err != nil {
		return nil, err
	}
	if envFile.Err != nil {
		logger.Warn("env", "default env file ignored", logrus.Fields{
			"path":  envFile.Path,
			"error": envFile.Err.Error(),
		})
	}

	rootPath := cfg.Server.RootPath
	if rootPath == "" {
		if rootPath, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("无法获取工作目录: %w", err)
		}
	}
	logger.Info("server", "Initializing from "+rootPath+"...", nil)

	if os.Getenv("API_SERVER_HOST_URL") == "" {
		logger.Info("env", "Configuration API_SERVER_HOST_URL not found...", nil)
		logger.Info("env", "Using default \""+config.DefaultHostURL+"\"", nil)
	} else {
		logger.Info("env", "config API_SERVER_HOST_URL found!", nil)
	}
	host, port, err := env.BindAddress()
	if err != nil {
		return nil, err
	}

	handle, err := NewHandle(host, port)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		env:      env,
		rootPath: rootPath,
		logger:   logger,
		handle:   handle,
		events:   newEmitter(),
	}

	plugins, err := pluginFactory(s)
	if err != nil {
		return nil, fmt.Errorf("加载插件失败: %w", err)
	}
	s.plugins = plugins

	routes, err := routeFactory(s)
	if err != nil {
		return nil, fmt.Errorf("注册路由失败: %w", err)
	}
	s.routes = routes

	return s, nil
}

// Start emits EventStarting, binds the listener, then emits EventStarted and
// returns the Handle. A bind failure is returned unwrapped and EventStarted
// is not emitted.
func (s *Server) Start(ctx context.Context) (*Handle, error) {
	s.logger.Info("server", "Start invoked...", nil)
	s.events.emit(EventStarting, s)

	if err := s.handle.Start(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("server", "Successfully started at:", s.handle.Info().URI)
	s.logger.Info("server", "Running start event...", nil)
	s.events.emit(EventStarted, s.handle)
	return s.handle, nil
}

// Shutdown stops the Handle, bounded by server.shutdown_timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.Server.ShutdownTimeout.DurationValue()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	s.logger.Info("server", "Shutdown invoked...", nil)
	return s.handle.Shutdown(ctx)
}

// Log forwards to the logger method named by level.
func (s *Server) Log(level, sender, message string, data any) error {
	return s.logger.Log(level, sender, message, data)
}

// On subscribes fn to event. Listeners added after an event fired miss it.
func (s *Server) On(event Event, fn Listener) {
	s.events.on(event, fn)
}

// OnStarting subscribes a typed listener to EventStarting.
func (s *Server) OnStarting(fn func(*Server)) {
	if fn == nil {
		return
	}
	s.On(EventStarting, func(payload any) {
		if srv, ok := payload.(*Server); ok {
			fn(srv)
		}
	})
}

// OnStarted subscribes a typed listener to EventStarted.
func (s *Server) OnStarted(fn func(*Handle)) {
	if fn == nil {
		return
	}
	s.On(EventStarted, func(payload any) {
		if h, ok := payload.(*Handle); ok {
			fn(h)
		}
	})
}

// Routes returns the route manager built during New; it never changes.
func (s *Server) Routes() *route.Manager {
	return s.routes
}

// Plugins returns the plugin manager built during New; it never changes.
func (s *Server) Plugins() *plugin.Manager {
	return s.plugins
}

// Handle returns the server handle, whether or not Start has run.
func (s *Server) Handle() *Handle {
	return s.handle
}

// App exposes the Fiber app so plugins and routes can mount handlers.
func (s *Server) App() *fiber.App {
	return s.handle.App()
}

// RootPath is the resolved project root used for static mounts.
func (s *Server) RootPath() string {
	return s.rootPath
}

// Settings returns the server section of the loaded config.
func (s *Server) Settings() config.ServerConfig {
	return s.cfg.Server
}

// Logger returns the logger created from LOGGING_LEVEL.
func (s *Server) Logger() *logging.Logger {
	return s.logger
}
