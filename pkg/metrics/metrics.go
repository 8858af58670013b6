package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimates_total",
			Help: "Total number of computed fare estimates",
		},
		[]string{"service", "category", "confidence"},
	)

	SurgeAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "surge_applied_total",
			Help: "Total number of estimates with a surge multiplier applied",
		},
		[]string{"service", "category"},
	)

	EstimateFare = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimate_fare_bdt",
			Help:    "Estimated fare in BDT",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3200},
		},
		[]string{"service", "category"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of booking confirmations",
		},
		[]string{"service", "status"},
	)

	QuoteCacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_cache_operations_total",
			Help: "Total number of quote cache operations",
		},
		[]string{"service", "operation", "status"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)

	RabbitMQMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_consumed_total",
			Help: "Total number of messages consumed from RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordEstimate records business metrics of a computed estimate
func RecordEstimate(service, category, confidence string, fare float64, surge bool) {
	EstimatesTotal.WithLabelValues(service, category, confidence).Inc()
	EstimateFare.WithLabelValues(service, category).Observe(fare)
	if surge {
		SurgeAppliedTotal.WithLabelValues(service, category).Inc()
	}
}

// RecordBooking records a booking confirmation attempt
func RecordBooking(service string, err error) {
	status := "confirmed"
	if err != nil {
		status = "failed"
	}
	BookingsTotal.WithLabelValues(service, status).Inc()
}

// RecordCacheOperation records quote cache metrics
func RecordCacheOperation(service, operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	QuoteCacheOperations.WithLabelValues(service, operation, status).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, queue, status).Inc()
}

// RecordRabbitMQConsume records RabbitMQ consume metrics
func RecordRabbitMQConsume(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesConsumed.WithLabelValues(service, queue, status).Inc()
}
