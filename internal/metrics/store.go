package metrics

import "github.com/prometheus/client_golang/prometheus"

// Store operation statuses.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Fund store Prometheus metrics.
var (
	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundex",
			Name:      "store_operations_total",
			Help:      "Total number of fund collection reads and writes",
		},
		[]string{"op", "status"}, // op: "load" / "save"
	)

	StoreBackfilledIDsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fundex",
			Name:      "store_backfilled_ids_total",
			Help:      "Total number of fund ids generated for records stored without one",
		},
	)

	StoreFunds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fundex",
			Name:      "store_funds",
			Help:      "Number of funds in the collection at the last load",
		},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers the fund store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreOperationsTotal)
	prometheus.MustRegister(StoreBackfilledIDsTotal)
	prometheus.MustRegister(StoreFunds)
	storeMetricsRegistered = true
}
