package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/any-hub/rest-server/internal/config"
	"github.com/any-hub/rest-server/internal/logging"
	"github.com/any-hub/rest-server/internal/server"
	"github.com/any-hub/rest-server/internal/version"
)

const defaultConfigPath = "config/default.toml"

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	// 启动遵循“env 文件 → logger → Fiber handle → plugins → routes”顺序，
	// 显式 env 文件缺失属于致命错误，直接以退出码 1 结束。
	srv, err := server.New(server.Options{Config: cfg, Stdout: stdOut})
	if err != nil {
		var envErr *config.EnvFileError
		if errors.As(err, &envErr) {
			fmt.Fprintf(stdErr, "[ENV] Error occurred! cannot load env file at %q. Please make sure it points to the specific file\n", envErr.Path)
			return 1
		}
		fmt.Fprintf(stdErr, "初始化服务失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["root_path"] = srv.RootPath()
	fields["plugins"] = srv.Plugins().Keys()
	fields["routes"] = srv.Routes().Len()
	fields["version"] = version.Full()

	if opts.checkOnly {
		fields["action"] = "check_config"
		fields["result"] = "ok"
		srv.Logger().Base().WithFields(fields).Info("配置校验通过")
		return 0
	}
	srv.Logger().Base().WithFields(fields).Info("配置加载完成")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv)
}

// serve 启动监听并阻塞到 ctx 结束或服务循环退出。
func serve(ctx context.Context, srv *server.Server) int {
	handle, err := srv.Start(ctx)
	if err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(stdErr, "HTTP 服务关闭失败: %v\n", err)
			return 1
		}
		return 0
	case err := <-handle.Done():
		if err != nil {
			fmt.Fprintf(stdErr, "HTTP 服务异常退出: %v\n", err)
			return 1
		}
		return 0
	}
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("rest-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config/default.toml，可被 REST_SERVER_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置并构建服务后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("REST_SERVER_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		// 默认配置文件可选，缺失时全部使用默认值。
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}
