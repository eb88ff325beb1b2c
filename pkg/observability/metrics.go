package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by tour lifecycle events.
type Metrics struct {
	ToursStarted prometheus.Counter
	ToursEnded   *prometheus.CounterVec
	StepsShown   *prometheus.CounterVec
	Warnings     prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg registers on the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ToursStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walkthrough_tours_started_total",
			Help: "Total number of tour activations",
		}),
		ToursEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walkthrough_tours_ended_total",
			Help: "Total number of tours ended, by reason",
		}, []string{"reason"}),
		StepsShown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walkthrough_steps_shown_total",
			Help: "Total number of times a step was shown",
		}, []string{"step"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walkthrough_warnings_total",
			Help: "Total number of convention warnings",
		}),
	}

	for _, c := range []prometheus.Collector{m.ToursStarted, m.ToursEnded, m.StepsShown, m.Warnings} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(context.Context, *domain.TourEvent) {
			m.ToursStarted.Inc()
		},
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepsShown.WithLabelValues(strconv.Itoa(e.Step)).Inc()
		},
		OnTourEnd: func(_ context.Context, e *domain.TourEvent) {
			m.ToursEnded.WithLabelValues(string(e.Reason)).Inc()
		},
		OnWarning: func(context.Context, *domain.TourEvent) {
			m.Warnings.Inc()
		},
	}
}
