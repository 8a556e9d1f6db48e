package prometheus

import (
	"time"

	"user-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// User operation metrics
	UserOperationsCounter *prometheus.CounterVec

	// Active user population metrics
	ActiveUsersGauge  prometheus.Gauge
	UsersPerTypeGauge *prometheus.GaugeVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// User operation metrics
	UserOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of user operations",
		},
		[]string{"operation"},
	)

	// Active user population metrics
	ActiveUsersGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_users",
			Help: "Number of active (non soft-deleted) users",
		},
	)

	UsersPerTypeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_active_users_per_type",
			Help: "Number of active users per user type",
		},
		[]string{"user_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordUserOperation increments the counter for user operations
func RecordUserOperation(operation string) {
	if UserOperationsCounter == nil {
		return
	}
	UserOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordHTTPRequest updates the HTTP request counter and duration histogram
func RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	if HttpRequestsTotal == nil || HttpRequestDuration == nil {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
}

// UpdateActiveUsers updates the active users gauge
func UpdateActiveUsers(count int) {
	if ActiveUsersGauge == nil {
		return
	}
	ActiveUsersGauge.Set(float64(count))
}

// UpdateUsersPerType updates the gauge for active users of one type
func UpdateUsersPerType(userType string, count int) {
	if UsersPerTypeGauge == nil {
		return
	}
	UsersPerTypeGauge.WithLabelValues(userType).Set(float64(count))
}
