package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artfolio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	MediaScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artfolio_media_scans_total",
			Help: "Total number of uploads tree scans",
		},
	)

	CategoryRecountsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artfolio_category_recounts_total",
			Help: "Total number of category count recomputations",
		},
	)
)
