package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/rest-server/internal/version"
)

// Info describes the bound address; it is populated by a successful Start.
type Info struct {
	Host string
	Port int
	URI  string
}

// Handle owns the Fiber application and its TCP listener.
type Handle struct {
	host string
	port int
	app  *fiber.App

	mu       sync.RWMutex
	listener net.Listener
	info     Info
	done     chan error
}

// NewHandle builds the Fiber application for host:port without binding it.
// Port 0 asks the kernel for an ephemeral port.
func NewHandle(host string, port int) (*Handle, error) {
	if host == "" {
		return nil, errors.New("host is required")
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}

	app := fiber.New(fiber.Config{
		AppName:       version.Full(),
		CaseSensitive: true,
	})
	return &Handle{host: host, port: port, app: app}, nil
}

// Start binds the listener and serves on a background goroutine. It returns
// once the bind has succeeded or failed; the bind error is returned as is.
// Start is not guarded against repeated calls.
func (h *Handle) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(h.host, strconv.Itoa(h.port)))
	if err != nil {
		return err
	}

	port := h.port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	done := make(chan error, 1)

	h.mu.Lock()
	h.listener = ln
	h.info = Info{
		Host: h.host,
		Port: port,
		URI:  "http://" + net.JoinHostPort(h.host, strconv.Itoa(port)),
	}
	h.done = done
	h.mu.Unlock()

	go func() {
		done <- h.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
		close(done)
	}()
	return nil
}

// Shutdown gracefully stops the Fiber application.
func (h *Handle) Shutdown(ctx context.Context) error {
	return h.app.ShutdownWithContext(ctx)
}

// App exposes the Fiber application so plugins and routes can register on it.
func (h *Handle) App() *fiber.App {
	return h.app
}

// Host returns the configured bind host.
func (h *Handle) Host() string {
	return h.host
}

// Port returns the configured bind port (0 for ephemeral).
func (h *Handle) Port() int {
	return h.port
}

// Info returns the bound address; zero value before Start succeeds.
func (h *Handle) Info() Info {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.info
}

// Done reports the serve loop's terminal error. It is nil before Start.
func (h *Handle) Done() <-chan error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.done
}
