// Package metrics exports navigator activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/phanxgames/iris"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts intents, intros and transitions. Wire it in through
// Hooks.
type Collector struct {
	intents     *prometheus.CounterVec
	drops       *prometheus.CounterVec
	intros      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	duration    prometheus.Histogram
	session     prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_intents_accepted_total",
			Help: "Navigation intents accepted by the navigator.",
		}, []string{"intent"}),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_intents_dropped_total",
			Help: "Navigation intents dropped, by reason.",
		}, []string{"intent", "reason"}),
		intros: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_intros_played_total",
			Help: "Session intros played to completion.",
		}, []string{"session"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iris_transitions_total",
			Help: "Completed iris transitions, by direction.",
		}, []string{"direction"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "iris_transition_duration_seconds",
			Help:    "Animator time taken by iris transitions.",
			Buckets: []float64{0.25, 0.5, 0.65, 0.8, 1, 2},
		}),
		session: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iris_current_session",
			Help: "Index of the current session.",
		}),
	}
	for _, m := range []prometheus.Collector{c.intents, c.drops, c.intros, c.transitions, c.duration, c.session} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// Hooks returns navigator hooks that feed the collector.
func (c *Collector) Hooks() iris.Hooks {
	var dir iris.Direction
	return iris.Hooks{
		OnIntent: func(i iris.Intent, _ int) {
			c.intents.WithLabelValues(i.String()).Inc()
		},
		OnDrop: func(i iris.Intent, r iris.DropReason) {
			c.drops.WithLabelValues(i.String(), r.String()).Inc()
		},
		OnIntroFinish: func(session int) {
			c.intros.WithLabelValues(strconv.Itoa(session)).Inc()
		},
		OnTransitionStart: func(_ int, d iris.Direction) {
			dir = d
		},
		OnTransitionFinish: func(to int, elapsed time.Duration) {
			c.transitions.WithLabelValues(dir.String()).Inc()
			c.duration.Observe(elapsed.Seconds())
			c.session.Set(float64(to))
		},
	}
}
