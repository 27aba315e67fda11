package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}

	// Should not panic
	m.Counter("test", 1)
	m.Gauge("test", 1.0)
	m.Histogram("test", 1.0)
	m.Timing("test", time.Second)
}

func TestInMemoryMetrics(t *testing.T) {
	t.Run("Counter", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("requests", 1)
		m.Counter("requests", 1)
		m.Counter("requests", 1)

		assert.Equal(t, int64(3), m.GetCounter("requests"))
	})

	t.Run("Counter with tags", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("requests", 1, T("method", "GET"))
		m.Counter("requests", 1, T("method", "POST"))
		m.Counter("requests", 1, T("method", "GET"))

		assert.Equal(t, int64(2), m.GetCounter("requests", T("method", "GET")))
		assert.Equal(t, int64(1), m.GetCounter("requests", T("method", "POST")))
	})

	t.Run("Gauge", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Gauge("temperature", 25.5)
		assert.Equal(t, 25.5, m.GetGauge("temperature"))

		m.Gauge("temperature", 30.0)
		assert.Equal(t, 30.0, m.GetGauge("temperature"))
	})

	t.Run("Gauge with tags", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Gauge("connections", 10, T("pool", "primary"))
		m.Gauge("connections", 5, T("pool", "replica"))

		assert.Equal(t, 10.0, m.GetGauge("connections", T("pool", "primary")))
		assert.Equal(t, 5.0, m.GetGauge("connections", T("pool", "replica")))
	})

	t.Run("Histogram", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Histogram("response_size", 100)
		m.Histogram("response_size", 200)
		m.Histogram("response_size", 150)

		values := m.GetHistogram("response_size")
		assert.Len(t, values, 3)
		assert.Contains(t, values, 100.0)
		assert.Contains(t, values, 200.0)
		assert.Contains(t, values, 150.0)
	})

	t.Run("Timing", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Timing("query_duration", 100*time.Millisecond)
		m.Timing("query_duration", 200*time.Millisecond)

		timings := m.GetTimings("query_duration")
		assert.Len(t, timings, 2)
		assert.Contains(t, timings, 100*time.Millisecond)
		assert.Contains(t, timings, 200*time.Millisecond)
	})

	t.Run("Reset", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("test", 1)
		m.Gauge("test", 1.0)
		m.Histogram("test", 1.0)
		m.Timing("test", time.Second)

		m.Reset()

		assert.Equal(t, int64(0), m.GetCounter("test"))
		assert.Equal(t, 0.0, m.GetGauge("test"))
		assert.Empty(t, m.GetHistogram("test"))
		assert.Empty(t, m.GetTimings("test"))
	})
}

func TestTag(t *testing.T) {
	tag := T("key", "value")
	assert.Equal(t, "key", tag.Key)
	assert.Equal(t, "value", tag.Value)
}

func TestFormatKey(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		tags     []Tag
		expected string
	}{
		{
			name:     "no tags",
			metric:   "requests",
			tags:     nil,
			expected: "requests",
		},
		{
			name:     "single tag",
			metric:   "requests",
			tags:     []Tag{T("method", "GET")},
			expected: "requests:method=GET",
		},
		{
			name:     "multiple tags",
			metric:   "requests",
			tags:     []Tag{T("method", "GET"), T("status", "200")},
			expected: "requests:method=GET:status=200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatKey(tt.metric, tt.tags)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMetricConstants(t *testing.T) {
	assert.Equal(t, "phoenix.operation.total", MetricOperationTotal)
	assert.Equal(t, "phoenix.points.awarded", MetricPointsAwarded)
	assert.Equal(t, "phoenix_insights_rebirth_score", metricName(MetricRebirthScore))
}

func TestPrometheusMetrics(t *testing.T) {
	t.Run("Counter accumulates per label set", func(t *testing.T) {
		m := NewPrometheusMetrics()

		m.Counter(MetricPointsAwarded, 5, T("reason", "meal"))
		m.Counter(MetricPointsAwarded, 15, T("reason", "journal"))
		m.Counter(MetricPointsAwarded, 5, T("reason", "meal"))

		vec := m.counters[MetricPointsAwarded]
		assert.Equal(t, 10.0, testutil.ToFloat64(vec.WithLabelValues("meal")))
		assert.Equal(t, 15.0, testutil.ToFloat64(vec.WithLabelValues("journal")))
	})

	t.Run("Counter ignores negative deltas", func(t *testing.T) {
		m := NewPrometheusMetrics()

		m.Counter("phoenix.test", 2)
		m.Counter("phoenix.test", -1)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.counters["phoenix.test"].WithLabelValues()))
	})

	t.Run("Gauge keeps last value", func(t *testing.T) {
		m := NewPrometheusMetrics()

		m.Gauge(MetricRebirthScore, 40)
		m.Gauge(MetricRebirthScore, 72)

		assert.Equal(t, 72.0, testutil.ToFloat64(m.gauges[MetricRebirthScore].WithLabelValues()))
	})

	t.Run("unknown tags are dropped", func(t *testing.T) {
		m := NewPrometheusMetrics()

		m.Counter("phoenix.jobs", 1, T("job", "daily"))
		m.Counter("phoenix.jobs", 1, T("job", "daily"), T("extra", "x"))

		assert.Equal(t, 2.0, testutil.ToFloat64(m.counters["phoenix.jobs"].WithLabelValues("daily")))
	})

	t.Run("Handler exposes metrics", func(t *testing.T) {
		m := NewPrometheusMetrics()
		m.Timing(MetricWorkerJobLatency, 25*time.Millisecond, T("job", "weekly_report"))
		m.Histogram("phoenix.meal.calories", 550)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "phoenix_worker_job_duration_seconds")
		assert.Contains(t, body, "phoenix_meal_calories")
	})
}
