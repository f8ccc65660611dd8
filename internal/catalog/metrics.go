package catalog

import "github.com/prometheus/client_golang/prometheus"

const (
	labelSlot   = "slot"
	labelResult = "result"
	labelKind   = "kind"

	resultOK    = "ok"
	resultError = "error"
	resultSkip  = "skipped"
)

type storeMetrics struct {
	writes *prometheus.CounterVec
	items  *prometheus.GaugeVec
}

func newStoreMetrics(reg prometheus.Registerer) *storeMetrics {
	m := &storeMetrics{
		writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_kv_writes_total",
				Help: "Catalog slot write-throughs by outcome",
			},
			[]string{labelSlot, labelResult},
		),
		items: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_items",
				Help: "Number of catalog entities held in memory",
			},
			[]string{labelKind},
		),
	}

	reg.MustRegister(m.writes, m.items)
	return m
}

func (m *storeMetrics) write(sl slot, result string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(string(sl), result).Inc()
}

func (m *storeMetrics) count(products, collections int) {
	if m == nil {
		return
	}
	m.items.WithLabelValues(string(slotProducts)).Set(float64(products))
	m.items.WithLabelValues(string(slotCollections)).Set(float64(collections))
}
