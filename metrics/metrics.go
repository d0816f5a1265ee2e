package metrics

import "github.com/prometheus/client_golang/prometheus"

// Key constants are exported primarily for documentation reasons. Typically,
// they will not be used programmatically outside of defining the collectors.

// Keys for vetclient metrics.
const (
	StoreOperationsTotalKey = "vetclient_store_operations_total"
	MenuChoicesTotalKey     = "vetclient_menu_choices_total"

	Fail     = "fail"
	Ok       = "ok"
	NotFound = "not_found"
	Invalid  = "invalid"
)

// Store operation label values.
const (
	OpFetch  = "fetch"
	OpUpdate = "update"
	OpSeed   = "seed"
)

// Collectors for vetclient metrics.
var (
	StoreOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: StoreOperationsTotalKey,
		Help: "Cumulative number of client store operations.",
	}, []string{"operation", "status"})
	MenuChoicesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MenuChoicesTotalKey,
		Help: "Cumulative number of menu choices made by the operator.",
	}, []string{"choice"})
)

// VetclientCollectors lists collectors used by vetclient.
func VetclientCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		StoreOperationsTotal,
		MenuChoicesTotal,
	}
}
