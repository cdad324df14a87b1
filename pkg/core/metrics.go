package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts save and load operations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	saves    *prometheus.CounterVec
	loads    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadata",
			Name:      "saves_total",
			Help:      "Payloads saved, by kind and format.",
		}, []string{"kind", "format"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadata",
			Name:      "loads_total",
			Help:      "Payload files loaded, by format.",
		}, []string{"format"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aadata",
			Name:      "failures_total",
			Help:      "Failed operations, by operation.",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{m.saves, m.loads, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) saved(kind string, f Format) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(kind, string(f)).Inc()
}

func (m *Metrics) loaded(f Format) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(string(f)).Inc()
}

func (m *Metrics) failed(op string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op).Inc()
}
