package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface with Prometheus collectors on a
// private registry.
type Prometheus struct {
	registry *prometheus.Registry

	loads       *prometheus.CounterVec
	loadSeconds *prometheus.HistogramVec
	treeNodes   prometheus.Gauge

	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec

	cacheOps   *prometheus.CounterVec
	cacheBytes *prometheus.CounterVec

	inFlight        prometheus.Gauge
	requests        *prometheus.CounterVec
	requestSeconds  *prometheus.HistogramVec
	handlerFailures *prometheus.CounterVec
}

// NewPrometheus creates the collectors under namespace and registers them
// together with the Go and process collectors.
func NewPrometheus(namespace string) *Prometheus {
	reg := prometheus.NewRegistry()
	buckets := []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

	p := &Prometheus{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "tree", Name: "loads_total",
			Help: "Tree loads by source and result.",
		}, []string{"source", "result"}),
		loadSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "tree", Name: "load_duration_seconds",
			Help: "Tree load latency.", Buckets: buckets,
		}, []string{"source"}),
		treeNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "tree", Name: "nodes",
			Help: "People in the most recently loaded tree.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "render", Name: "total",
			Help: "Renders by format and result.",
		}, []string{"format", "result"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "render", Name: "duration_seconds",
			Help: "Render latency by format.", Buckets: buckets,
		}, []string{"format"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "operations_total",
			Help: "Cache lookups and writes by key type.",
		}, []string{"key_type", "op"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "written_bytes_total",
			Help: "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
			Help: "Requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Served requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help: "Request latency by route.", Buckets: buckets,
		}, []string{"method", "route"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "handler_errors_total",
			Help: "Handler failures by route.",
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{Namespace: namespace}),
		p.loads, p.loadSeconds, p.treeNodes,
		p.renders, p.renderSeconds,
		p.cacheOps, p.cacheBytes,
		p.inFlight, p.requests, p.requestSeconds, p.handlerFailures,
	)
	return p
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, source string, nodeCount int, d time.Duration, err error) {
	p.loads.WithLabelValues(source, result(err)).Inc()
	p.loadSeconds.WithLabelValues(source).Observe(d.Seconds())
	if err == nil {
		p.treeNodes.Set(float64(nodeCount))
	}
}

func (p *Prometheus) OnRenderStart(context.Context, string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	p.renders.WithLabelValues(format, result(err)).Inc()
	p.renderSeconds.WithLabelValues(format).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.inFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.inFlight.Dec()
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	p.handlerFailures.WithLabelValues(method, route).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
