package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkgen_http_requests_total",
		Help: "Total number of HTTP requests by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkgen_http_request_duration_seconds",
		Help:    "HTTP request latency by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	linksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkgen_links_created_total",
		Help: "Total number of short links created.",
	})

	qrRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkgen_qr_rendered_total",
		Help: "Total number of QR images rendered.",
	})

	redirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkgen_redirects_total",
		Help: "Total number of short link redirects served.",
	})
)
