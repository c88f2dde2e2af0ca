package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weather_location",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Geocoder upstream metrics
	GeocodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "geocoder",
			Name:      "requests_total",
			Help:      "Total number of upstream geocoder requests",
		},
		[]string{"operation", "status"},
	)

	GeocodeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weather_location",
			Subsystem: "geocoder",
			Name:      "request_duration_seconds",
			Help:      "Upstream geocoder request duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Cache metrics
	CacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Total number of cache events",
		},
		[]string{"cache", "event"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "weather_location",
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Current number of cache entries",
		},
		[]string{"cache"},
	)

	// Timezone resolution metrics
	TimezoneLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "timezone",
			Name:      "lookups_total",
			Help:      "Total number of timezone resolutions by source",
		},
		[]string{"source"},
	)

	// Scheduler metrics
	SchedulerJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "scheduler",
			Name:      "jobs_total",
			Help:      "Total number of scheduled jobs executed",
		},
		[]string{"job_name", "status"},
	)

	SchedulerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weather_location",
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduled job execution duration in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"job_name"},
	)

	LastSchedulerJobTime = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "weather_location",
			Subsystem: "scheduler",
			Name:      "last_job_timestamp",
			Help:      "Unix timestamp of last job execution",
		},
		[]string{"job_name"},
	)

	// Rate limiter metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weather_location",
			Subsystem: "rate_limiter",
			Name:      "requests_total",
			Help:      "Total number of rate-limited requests",
		},
		[]string{"ip", "allowed"},
	)
)

// Metrics provides convenience methods for recording metrics
type Metrics struct{}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, http.StatusText(statusCode)).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordGeocodeRequest records an upstream geocoder request metric
func (m *Metrics) RecordGeocodeRequest(operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	GeocodeRequestsTotal.WithLabelValues(operation, status).Inc()
	GeocodeRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheEvent records a cache hit, miss or expiry
func (m *Metrics) RecordCacheEvent(cache, event string) {
	CacheEventsTotal.WithLabelValues(cache, event).Inc()
}

// UpdateCacheEntries updates the entry gauge for a cache
func (m *Metrics) UpdateCacheEntries(cache string, count int) {
	CacheEntries.WithLabelValues(cache).Set(float64(count))
}

// RecordTimezoneLookup records which source resolved a timezone
func (m *Metrics) RecordTimezoneLookup(source string) {
	TimezoneLookupsTotal.WithLabelValues(source).Inc()
}

// RecordRateLimit records a rate limiter decision
func (m *Metrics) RecordRateLimit(ip string, allowed bool) {
	RateLimitRequestsTotal.WithLabelValues(ip, strconv.FormatBool(allowed)).Inc()
}

// RecordSchedulerJob records a scheduler job execution
func (m *Metrics) RecordSchedulerJob(jobName string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SchedulerJobsTotal.WithLabelValues(jobName, status).Inc()
	SchedulerJobDuration.WithLabelValues(jobName).Observe(duration.Seconds())
	LastSchedulerJobTime.WithLabelValues(jobName).SetToCurrentTime()
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
