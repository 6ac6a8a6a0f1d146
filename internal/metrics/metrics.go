// Package metrics holds the Prometheus collectors shared by the renderer and
// the HTTP server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ArticlesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codetabs_articles_rendered_total",
			Help: "Total number of Markdown documents rendered",
		},
		[]string{"format"},
	)
	TabGroupsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codetabs_tab_groups_rendered_total",
			Help: "Total number of multilang fences rendered as tab groups",
		},
	)
	RenderErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codetabs_render_errors_total",
			Help: "Total number of multilang fences that could not be decoded",
		},
	)
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codetabs_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codetabs_http_request_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
