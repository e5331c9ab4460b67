package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes are the paths used as the route label; anything else is "other".
var routes = map[string]bool{
	"/health":     true,
	"/predict":    true,
	"/model_info": true,
	"/metrics":    true,
}

type serverMetrics struct {
	requests          *prometheus.CounterVec
	predictionSeconds prometheus.Histogram
	clamped           prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "scorecast",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			}, []string{"route", "code"}),
		predictionSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "scorecast",
				Name:      "prediction_duration_seconds",
				Help:      "Time spent computing a single prediction.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			}),
		clamped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "scorecast",
				Name:      "predictions_clamped_total",
				Help:      "Predictions whose raw value was outside [0, 100].",
			}),
	}
	reg.MustRegister(m.requests, m.predictionSeconds, m.clamped)
	return m
}

func (m *serverMetrics) observeRequest(path string, status int) {
	route := path
	if !routes[route] {
		route = "other"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *serverMetrics) handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
