package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP metrics per request.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// resourceSegments are path segments that are followed by an entity ID.
var resourceSegments = map[string]bool{
	"bank-accounts":       true,
	"accounting-accounts": true,
	"transactions":        true,
	"audit-entries":       true,
	"users":               true,
}

// entityTypeSegments are bounded entity-type path segments, as used in
// audit trail routes. The segment after them is an entity ID.
var entityTypeSegments = map[string]bool{
	"Transaction":       true,
	"BankAccount":       true,
	"AccountingAccount": true,
	"IntegrityReport":   true,
}

// normalizePath replaces entity IDs with :id to keep metric cardinality
// bounded.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if (resourceSegments[parts[i-1]] || entityTypeSegments[parts[i-1]]) && parts[i] != "" && !entityTypeSegments[parts[i]] {
			parts[i] = ":id"
		}
	}

	return strings.Join(parts, "/")
}
