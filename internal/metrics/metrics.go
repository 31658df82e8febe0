package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdb_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assetdb_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Inventory metrics
	InventoryObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assetdb_inventory_objects",
			Help: "Number of stored inventory objects by entity",
		},
		[]string{"entity"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		InventoryObjects,
	)
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Counter возвращает количество строк сущности; вызывается на каждый scrape.
type Counter func() (map[string]int64, error)

// Handler returns the Prometheus scrape handler. When count is set the
// inventory gauge is refreshed before each scrape.
func Handler(count Counter) http.Handler {
	prom := promhttp.Handler()
	if count == nil {
		return prom
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if counts, err := count(); err == nil {
			for entity, n := range counts {
				InventoryObjects.WithLabelValues(entity).Set(float64(n))
			}
		}
		prom.ServeHTTP(w, r)
	})
}
