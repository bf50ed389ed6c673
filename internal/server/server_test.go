package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/any-hub/rest-server/internal/config"
	"github.com/any-hub/rest-server/internal/logging"
	"github.com/any-hub/rest-server/internal/plugin"
	"github.com/any-hub/rest-server/internal/route"
)

func newTestServer(t *testing.T, hostURL string, opts Options) *Server {
	t.Helper()
	t.Setenv("LOGGING_LEVEL", "error")
	t.Setenv("API_SERVER_HOST_URL", hostURL)
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Config == nil {
		opts.Config = &config.Config{Server: config.ServerConfig{RootPath: t.TempDir()}}
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func TestNewDefaultsToLocalhost8000(t *testing.T) {
	s := newTestServer(t, "", Options{})

	assert.Equal(t, "localhost", s.Handle().Host())
	assert.Equal(t, 8000, s.Handle().Port())
}

func TestNewHonorsHostURL(t *testing.T) {
	s := newTestServer(t, "http://example.com:9090", Options{})

	assert.Equal(t, 9090, s.Handle().Port())
	assert.Equal(t, "example.com", s.Handle().Host())
}

func TestNewRejectsMalformedHostURL(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "error")
	t.Setenv("API_SERVER_HOST_URL", "http://localhost:99999")

	_, err := New(Options{Stdout: io.Discard, Config: &config.Config{}})
	require.Error(t, err)
}

func TestNewRejectsUnknownLoggingLevel(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "chatty")

	_, err := New(Options{Stdout: io.Discard, Config: &config.Config{}})
	require.Error(t, err)
}

func TestNewDefaultsRootPathToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s := newTestServer(t, "", Options{Config: &config.Config{}})
	wd, err := filepath.EvalSymlinks(s.RootPath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, wd)
}

func TestNewInvokesFactoriesOnceInOrder(t *testing.T) {
	var order []string
	var pluginHost plugin.Host
	var routeHost route.Host

	s := newTestServer(t, "", Options{
		PluginFactory: func(h plugin.Host) (*plugin.Manager, error) {
			order = append(order, "plugins")
			pluginHost = h
			return plugin.NewManager(h)
		},
		RouteFactory: func(h route.Host) (*route.Manager, error) {
			order = append(order, "routes")
			routeHost = h
			require.NotNil(t, h.Plugins(), "plugins must exist before routes")
			return route.NewManager(h)
		},
	})

	assert.Equal(t, []string{"plugins", "routes"}, order)
	assert.Same(t, s, pluginHost)
	assert.Same(t, s, routeHost)
}

func TestAccessorsAreStable(t *testing.T) {
	s := newTestServer(t, "", Options{})

	require.NotNil(t, s.Plugins())
	require.NotNil(t, s.Routes())
	assert.Same(t, s.Plugins(), s.Plugins())
	assert.Same(t, s.Routes(), s.Routes())
	assert.Same(t, s.Handle(), s.Handle())
}

func TestNewFactoryErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	t.Setenv("LOGGING_LEVEL", "error")

	_, err := New(Options{
		Stdout: io.Discard,
		Config: &config.Config{},
		PluginFactory: func(plugin.Host) (*plugin.Manager, error) {
			return nil, boom
		},
	})
	require.ErrorIs(t, err, boom)
}

func TestNewFailsOnMissingEnvFile(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "error")
	called := false
	factory := func(plugin.Host) (*plugin.Manager, error) {
		called = true
		return nil, nil
	}

	s, err := New(Options{
		Stdout:        io.Discard,
		Config:        &config.Config{Server: config.ServerConfig{EnvPath: filepath.Join(t.TempDir(), "missing.env")}},
		PluginFactory: factory,
	})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.False(t, called)

	var envErr *config.EnvFileError
	assert.ErrorAs(t, err, &envErr)
}

func TestStartEmitsEventsAroundListen(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:0", Options{})

	var events []string
	s.OnStarting(func(srv *Server) {
		assert.Same(t, s, srv)
		assert.Empty(t, srv.Handle().Info().URI, "starting must fire before listen")
		events = append(events, string(EventStarting))
	})
	s.OnStarted(func(h *Handle) {
		assert.Same(t, s.Handle(), h)
		assert.NotEmpty(t, h.Info().URI)
		events = append(events, string(EventStarted))
	})

	h, err := s.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	assert.Same(t, s.Handle(), h)
	assert.Equal(t, []string{"starting", "started"}, events)

	resp := getEventually(t, h.Info().URI+route.HealthPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartFailureSkipsStarted(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()
	port := occupied.Addr().(*net.TCPAddr).Port

	s := newTestServer(t, "http://127.0.0.1:"+strconv.Itoa(port), Options{})

	var starting, started int
	s.On(EventStarting, func(any) { starting++ })
	s.On(EventStarted, func(any) { started++ })

	h, err := s.Start(context.Background())
	require.Error(t, err)
	assert.Nil(t, h)
	assert.Equal(t, 1, starting)
	assert.Zero(t, started)

	var opErr *net.OpError
	assert.ErrorAs(t, err, &opErr, "listen error should be returned unwrapped")
}

func TestLogForwardsToLogger(t *testing.T) {
	s := newTestServer(t, "", Options{})

	require.NoError(t, s.Log("info", "test", "hello", map[string]int{"n": 1}))
	err := s.Log("shout", "test", "hello", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, logging.ErrUnsupportedLevel))
}
