package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CacheLookups counts insights cache lookups by result (hit, miss, error).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_cache_lookups_total",
			Help: "Insights cache lookups by result",
		},
		[]string{"result"},
	)

	// ComputeDuration tracks insights computation time by mode (full, fast).
	ComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_compute_duration_seconds",
			Help:    "Insights computation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// ComputeFallbacks counts degraded responses by kind (fast, stale).
	ComputeFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_compute_fallbacks_total",
			Help: "Insights responses served by a fallback path",
		},
		[]string{"kind"},
	)

	// RulesSkipped counts rules skipped because their detail could not be loaded.
	RulesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_rules_skipped_total",
			Help: "Insight rules skipped by rule id",
		},
		[]string{"rule"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, CacheLookups, ComputeDuration, ComputeFallbacks, RulesSkipped)
	})
}

// NormalizePath replaces numeric path segments with {id} to bound label cardinality.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records the duration of one HTTP request
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	RequestDuration.WithLabelValues(method, NormalizePath(path), strconv.Itoa(statusCode)).Observe(durationSeconds)
}

func IncCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

func ObserveCompute(mode string, seconds float64) {
	ComputeDuration.WithLabelValues(mode).Observe(seconds)
}

func IncFallback(kind string) {
	ComputeFallbacks.WithLabelValues(kind).Inc()
}

func IncRuleSkipped(rule string) {
	RulesSkipped.WithLabelValues(rule).Inc()
}
