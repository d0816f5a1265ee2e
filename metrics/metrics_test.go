package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestCollectorLabelSets(t *testing.T) {
	var reg = prometheus.NewRegistry()
	reg.MustRegister(VetclientCollectors()...)

	StoreOperationsTotal.WithLabelValues(OpUpdate, NotFound).Inc()
	MenuChoicesTotal.WithLabelValues(Invalid).Inc()

	var families, err = reg.Gather()
	require.NoError(t, err)

	var labels = make(map[string][]string)
	for _, mf := range families {
		require.Equal(t, dto.MetricType_COUNTER, mf.GetType())

		for _, pair := range mf.GetMetric()[0].GetLabel() {
			labels[mf.GetName()] = append(labels[mf.GetName()], pair.GetName())
		}
	}
	require.Equal(t, map[string][]string{
		StoreOperationsTotalKey: {"operation", "status"},
		MenuChoicesTotalKey:     {"choice"},
	}, labels)

	require.Equal(t, float64(1), counterVal(StoreOperationsTotal.WithLabelValues(OpUpdate, NotFound)))
}

func counterVal(c prometheus.Counter) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		panic(err)
	}
	return *out.Counter.Value
}
