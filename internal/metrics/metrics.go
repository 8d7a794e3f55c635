// Package metrics contains the Prometheus collectors exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbox_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cookbox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	MediaFilesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbox_media_files_stored_total",
			Help: "Total number of uploaded media files written to the blob area",
		},
		[]string{"slot"},
	)

	MediaBytesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbox_media_bytes_stored_total",
			Help: "Total number of uploaded media bytes written to the blob area",
		},
		[]string{"slot"},
	)
)

// RecordHTTPRequest records a served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMediaStored records one media file of n bytes written for slot.
func RecordMediaStored(slot string, n int64) {
	MediaFilesStored.WithLabelValues(slot).Inc()
	MediaBytesStored.WithLabelValues(slot).Add(float64(n))
}
