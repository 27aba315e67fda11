package observability

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements Metrics on top of a Prometheus registry.
// Collectors are created lazily per metric name; the label set of a name is
// fixed by its first observation.
type PrometheusMetrics struct {
	registry   *prometheus.Registry
	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	labels     map[string][]string
}

// NewPrometheusMetrics creates a collector backed by a fresh registry that
// also exports process and Go runtime metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return &PrometheusMetrics{
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labels:     make(map[string][]string),
	}
}

// Registry exposes the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PrometheusMetrics) Counter(name string, value int64, tags ...Tag) {
	if value < 0 {
		return
	}
	m.mu.Lock()
	vec, ok := m.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricName(name) + "_total",
			Help: "Counter " + name,
		}, m.labelsFor(name, tags))
		m.registry.MustRegister(vec)
		m.counters[name] = vec
	}
	keys := m.labels[name]
	m.mu.Unlock()

	if c, err := vec.GetMetricWithLabelValues(labelValues(keys, tags)...); err == nil {
		c.Add(float64(value))
	}
}

func (m *PrometheusMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	vec, ok := m.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: metricName(name),
			Help: "Gauge " + name,
		}, m.labelsFor(name, tags))
		m.registry.MustRegister(vec)
		m.gauges[name] = vec
	}
	keys := m.labels[name]
	m.mu.Unlock()

	if g, err := vec.GetMetricWithLabelValues(labelValues(keys, tags)...); err == nil {
		g.Set(value)
	}
}

func (m *PrometheusMetrics) Histogram(name string, value float64, tags ...Tag) {
	m.observe(name, "", prometheus.DefBuckets, value, tags)
}

func (m *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.observe(name, "_seconds", prometheus.ExponentialBuckets(0.001, 2, 12), duration.Seconds(), tags)
}

func (m *PrometheusMetrics) observe(name, suffix string, buckets []float64, value float64, tags []Tag) {
	m.mu.Lock()
	vec, ok := m.histograms[name]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    metricName(name) + suffix,
			Help:    "Histogram " + name,
			Buckets: buckets,
		}, m.labelsFor(name, tags))
		m.registry.MustRegister(vec)
		m.histograms[name] = vec
	}
	keys := m.labels[name]
	m.mu.Unlock()

	if h, err := vec.GetMetricWithLabelValues(labelValues(keys, tags)...); err == nil {
		h.Observe(value)
	}
}

// labelsFor must be called with m.mu held.
func (m *PrometheusMetrics) labelsFor(name string, tags []Tag) []string {
	if keys, ok := m.labels[name]; ok {
		return keys
	}
	keys := make([]string, 0, len(tags))
	for _, t := range tags {
		keys = append(keys, t.Key)
	}
	sort.Strings(keys)
	m.labels[name] = keys
	return keys
}

// labelValues orders tag values by the registered keys. Unknown tags are
// dropped and missing ones become empty strings.
func labelValues(keys []string, tags []Tag) []string {
	values := make([]string, len(keys))
	for i, k := range keys {
		for _, t := range tags {
			if t.Key == k {
				values[i] = t.Value
				break
			}
		}
	}
	return values
}

func metricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}
