package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
		[]string{"method", "endpoint"},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	dbQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Business metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	enquiriesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiries_created_total",
			Help: "Total number of enquiries created",
		},
		[]string{"source"},
	)

	assignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_assignments_total",
			Help: "Total number of enquiry assignments",
		},
		[]string{"mode", "status"}, // explicit|auto, success|failure
	)

	followUpsDue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enquiry_follow_ups_due",
			Help: "Enquiries with a follow-up due today at the last scan",
		},
	)

	followUpScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_follow_up_scans_total",
			Help: "Total number of follow-up scans",
		},
		[]string{"status"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_up_notifications_total",
			Help: "Follow-up notifications handed to a delivery channel",
		},
		[]string{"channel", "status"},
	)
)

var idSegment = regexp.MustCompile(`/\d+(/|$)`)

// endpointLabel collapses numeric path segments so ids do not explode
// label cardinality.
func endpointLabel(path string) string {
	for idSegment.MatchString(path) {
		path = idSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}

// PrometheusMiddleware creates a middleware that records Prometheus metrics
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		endpoint := endpointLabel(r.URL.Path)
		statusCode := strconv.Itoa(wrapped.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, endpoint, statusCode).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, endpoint).Observe(float64(wrapped.size))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	authAttemptsTotal.WithLabelValues(outcome(success)).Inc()
}

// RecordEnquiryCreated records a new enquiry by lead source
func RecordEnquiryCreated(source string) {
	enquiriesCreatedTotal.WithLabelValues(source).Inc()
}

// RecordAssignment records an explicit or automatic assignment attempt
func RecordAssignment(mode string, success bool) {
	assignmentsTotal.WithLabelValues(mode, outcome(success)).Inc()
}

// RecordFollowUpScan records a scan and, when it succeeded, the due count
func RecordFollowUpScan(due int, err error) {
	followUpScansTotal.WithLabelValues(outcome(err == nil)).Inc()
	if err == nil {
		followUpsDue.Set(float64(due))
	}
}

// RecordNotification records a delivery attempt on one channel
func RecordNotification(channel string, err error) {
	notificationsTotal.WithLabelValues(channel, outcome(err == nil)).Inc()
}

// RecordDBQuery records a database query
func RecordDBQuery(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	dbQueriesTotal.WithLabelValues(operation, status).Inc()
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnections updates database connection metrics
func UpdateDBConnections(active, idle int) {
	dbConnectionsActive.Set(float64(active))
	dbConnectionsIdle.Set(float64(idle))
}
