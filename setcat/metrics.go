package setcat

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "setcat"

// Metrics counts constructions and cache hits of a Universe.
// A nil *Metrics records nothing.
type Metrics struct {
	// Constructions counts built objects.
	// Labels: kind (product, coproduct, exponential, ...), mode (materialized, lazy)
	Constructions *prometheus.CounterVec

	// CacheHits counts constructions answered from a Universe cache.
	// Labels: kind
	CacheHits *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "constructions_total",
			Help:      "Objects built by the engine by kind and carrier mode",
		}, []string{"kind", "mode"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Constructions answered from a universe cache by kind",
		}, []string{"kind"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Constructions, m.CacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordConstruction(kind string, mode CarrierKind) {
	if m == nil {
		return
	}
	m.Constructions.WithLabelValues(kind, mode.String()).Inc()
}

func (m *Metrics) recordCacheHit(kind string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(kind).Inc()
}
