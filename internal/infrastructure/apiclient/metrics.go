package apiclient

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_requests_total",
			Help: "Content API requests by route and outcome (ok, network, or HTTP status)",
		},
		[]string{"method", "route", "outcome"},
	)
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_api_request_duration_seconds",
			Help:    "Content API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func observe(method, route string, err error, elapsed time.Duration) {
	apiRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	apiRequests.WithLabelValues(method, route, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return strconv.Itoa(httpErr.Status)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "network"
	}
	return "decode"
}
