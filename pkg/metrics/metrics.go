// Package metrics exposes Prometheus counters for the check-in pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

type Registry struct {
	registry *prometheus.Registry

	checkins             *prometheus.CounterVec
	thresholdTransitions *prometheus.CounterVec
	eventsDropped        prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.checkins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointage_checkins_total",
			Help: "Check-in attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	r.thresholdTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointage_threshold_transitions_total",
			Help: "Adaptive accuracy threshold transitions by type",
		},
		[]string{"transition"},
	)

	r.eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pointage_events_dropped_total",
			Help: "Outbound events dropped because the dispatch queue was full",
		},
	)

	r.registry.MustRegister(r.checkins, r.thresholdTransitions, r.eventsDropped)
	return r
}

func (r *Registry) ObserveCheckin(kind, outcome string) {
	r.checkins.WithLabelValues(kind, outcome).Inc()
}

// ObserveThresholdTransition counts tighten/relax/restore decisions made by
// the adaptive tuner.
func (r *Registry) ObserveThresholdTransition(transition string) {
	r.thresholdTransitions.WithLabelValues(transition).Inc()
}

func (r *Registry) ObserveEventDropped() {
	r.eventsDropped.Inc()
}

func (r *Registry) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
