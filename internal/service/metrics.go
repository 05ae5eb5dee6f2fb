package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ModelMetrics counts the outcome of participant modelling.
type ModelMetrics struct {
	meters       *prometheus.CounterVec
	participants *prometheus.CounterVec
}

// NewModelMetrics registers the modelling counters on reg.
func NewModelMetrics(reg prometheus.Registerer) (*ModelMetrics, error) {
	m := &ModelMetrics{
		meters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_meters_modelled_total",
				Help: "Total number of meters modelled, by resulting status.",
			},
			[]string{"status"},
		),
		participants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_participants_modelled_total",
				Help: "Total number of participants modelled, by resulting status.",
			},
			[]string{"env", "status"},
		),
	}
	for _, c := range []prometheus.Collector{m.meters, m.participants} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ModelMetrics) observeMeter(status string) {
	if m == nil {
		return
	}
	m.meters.WithLabelValues(status).Inc()
}

func (m *ModelMetrics) observeParticipant(env, status string) {
	if m == nil {
		return
	}
	m.participants.WithLabelValues(env, status).Inc()
}
