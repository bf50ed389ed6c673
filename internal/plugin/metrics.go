package plugin

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath 是 Prometheus 抓取端点。
const MetricsPath = "/-/metrics"

func init() {
	MustRegister(Definition{
		Key:         "metrics",
		Description: "Prometheus request metrics exposed at " + MetricsPath,
		Priority:    20,
		Endpoints: []Endpoint{
			{Method: fiber.MethodGet, Path: MetricsPath, Description: "Prometheus scrape endpoint"},
		},
		Register: registerMetrics,
	})
}

type requestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// registerMetrics 为每个实例创建独立的 prometheus.Registry，避免重复注册冲突。
func registerMetrics(host Host) error {
	reg := prometheus.NewRegistry()
	m := &requestMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rest_server",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rest_server",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	app := host.App()
	app.Use(m.middleware())
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return nil
}

func (m *requestMetrics) middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		method := c.Method()

		err := c.Next()

		status := responseStatus(c, err)
		m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		return err
	}
}
