package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP метрики
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)

	// Метрики магазина
	KeyClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "key_claims_total",
			Help: "Total number of product key claim attempts",
		},
		[]string{"result"},
	)
	KeysAvailable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "product_keys_available",
			Help: "Number of unused keys per product",
		},
		[]string{"product_id"},
	)
	IntentsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_intents_submitted_total",
			Help: "Total number of purchase intents submitted by customers",
		},
	)
	InvoicesRenderedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_rendered_total",
			Help: "Total number of invoices rendered",
		},
	)
)

func InitMetrics() {
	// Регистрация HTTP метрик
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestsInFlight)

	// Регистрация метрик магазина
	prometheus.MustRegister(KeyClaimsTotal)
	prometheus.MustRegister(KeysAvailable)
	prometheus.MustRegister(IntentsSubmittedTotal)
	prometheus.MustRegister(InvoicesRenderedTotal)

	// Стандартные метрики Go
	prometheus.MustRegister(prometheus.NewGoCollector())
	prometheus.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
}
