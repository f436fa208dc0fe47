package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garrettladley/boldrelay/internal/service/webhook"
)

const namespace = "boldrelay"

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Verified webhook events dispatched to a handler, by type.",
		}, []string{"type"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records request count and latency under a fixed route label.
func (m *Metrics) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handlers counts dispatched events before handing them to next.
func (m *Metrics) Handlers(next webhook.Handlers) webhook.Handlers {
	if next == nil {
		next = webhook.LogHandlers{}
	}
	return &countingHandlers{next: next, events: m.events}
}

type countingHandlers struct {
	next   webhook.Handlers
	events *prometheus.CounterVec
}

func (c *countingHandlers) SaleApproved(ctx context.Context, userID string, event webhook.Event) {
	c.events.WithLabelValues(string(webhook.EventSaleApproved)).Inc()
	c.next.SaleApproved(ctx, userID, event)
}

func (c *countingHandlers) SaleRejected(ctx context.Context, userID string, event webhook.Event) {
	c.events.WithLabelValues(string(webhook.EventSaleRejected)).Inc()
	c.next.SaleRejected(ctx, userID, event)
}

func (c *countingHandlers) VoidApproved(ctx context.Context, userID string, event webhook.Event) {
	c.events.WithLabelValues(string(webhook.EventVoidApproved)).Inc()
	c.next.VoidApproved(ctx, userID, event)
}

func (c *countingHandlers) VoidRejected(ctx context.Context, userID string, event webhook.Event) {
	c.events.WithLabelValues(string(webhook.EventVoidRejected)).Inc()
	c.next.VoidRejected(ctx, userID, event)
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
