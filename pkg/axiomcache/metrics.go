package axiomcache

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics are the cache counters. A nil *metrics counts nothing.
type metrics struct {
	loads         *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	adds          *prometheus.CounterVec
	removes       *prometheus.CounterVec
	denied        prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "axiomcache",
			Name:      "bucket_loads_total",
			Help:      "Buckets read from the graph.",
		}, []string{"shape"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "axiomcache",
			Name:      "invalidations_total",
			Help:      "Buckets dropped after an edit that could not be attributed.",
		}, []string{"shape"}),
		adds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "axiomcache",
			Name:      "axiom_adds_total",
			Help:      "Axioms written through the cache.",
		}, []string{"shape"}),
		removes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "axiomcache",
			Name:      "axiom_removes_total",
			Help:      "Axioms removed through the cache.",
		}, []string{"shape"}),
		denied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ontograph",
			Subsystem: "axiomcache",
			Name:      "denied_deletions_total",
			Help:      "Triples kept on removal because another axiom still owns them.",
		}),
	}
	m.loads = register(reg, m.loads)
	m.invalidations = register(reg, m.invalidations)
	m.adds = register(reg, m.adds)
	m.removes = register(reg, m.removes)
	m.denied = register(reg, m.denied)
	return m
}

// register returns the collector already registered under the same name, so
// several controllers can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		slog.Warn("failed to register cache metric", "error", err)
	}
	return c
}

func (m *metrics) load(shape string) {
	if m != nil {
		m.loads.WithLabelValues(shape).Inc()
	}
}

func (m *metrics) invalidate(shape string) {
	if m != nil {
		m.invalidations.WithLabelValues(shape).Inc()
	}
}

func (m *metrics) add(shape string) {
	if m != nil {
		m.adds.WithLabelValues(shape).Inc()
	}
}

func (m *metrics) remove(shape string) {
	if m != nil {
		m.removes.WithLabelValues(shape).Inc()
	}
}

func (m *metrics) deny() {
	if m != nil {
		m.denied.Inc()
	}
}
