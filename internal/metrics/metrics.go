package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	OrdersPlaced     prometheus.Counter
	CheckoutFailures *prometheus.CounterVec
}

// New registers the collectors once per process. The service name goes in a
// const label because names like "pasal-api" are not valid metric name parts.
func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "pasal",
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests.",
		ConstLabels: labels,
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "pasal",
		Name:        "http_request_duration_ms",
		Help:        "HTTP request latency in milliseconds.",
		Buckets:     []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		ConstLabels: labels,
	}, []string{"route"})
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "pasal",
		Name:        "orders_placed_total",
		Help:        "Orders successfully placed.",
		ConstLabels: labels,
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "pasal",
		Name:        "checkout_failures_total",
		Help:        "Checkout attempts rejected, by reason.",
		ConstLabels: labels,
	}, []string{"reason"})

	prometheus.MustRegister(requests, latency, placed, failures)
	return &Metrics{
		Requests:         requests,
		LatencyMS:        latency,
		OrdersPlaced:     placed,
		CheckoutFailures: failures,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
