package monitoring

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Metrics struct {
	registry *prometheus.Registry

	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	exports       *prometheus.CounterVec

	requestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rebate_logins_total",
				Help: "Number of login attempts",
			},
			[]string{"status"}, // success, failed
		),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rebate_registrations_total",
				Help: "Number of registrations by result",
			},
			[]string{"result"}, // success or the validation error key
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rebate_report_exports_total",
				Help: "Number of generated reports",
			},
			[]string{"format"}, // csv, xlsx
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rebate_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.registrations,
		m.exports,
		m.requestDuration,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordLogin(success bool) {
	if success {
		m.logins.WithLabelValues("success").Inc()
	} else {
		m.logins.WithLabelValues("failed").Inc()
	}
}

func (m *Metrics) RecordRegistration(result string) {
	m.registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordExport(format string) {
	m.exports.WithLabelValues(format).Inc()
}

// Middleware observes the latency of every request, labelled by route
// pattern so path parameters do not explode cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started_at := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fiber_err, ok := err.(*fiber.Error); ok {
			status = fiber_err.Code
		}

		m.requestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(started_at).Seconds())

		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	return func(c *fiber.Ctx) error {
		handler(c.Context())

		return nil
	}
}
