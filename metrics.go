package sysexec

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors an Executor reports through, if
// configured via WithMetrics.
type Metrics struct {
	TicksTotal           prometheus.Counter
	ActiveModels         prometheus.Gauge
	ScheduleQueueDepth   prometheus.Gauge
	ExternalInputDepth   prometheus.Gauge
	ExternalOutputDepth  prometheus.Gauge
	ModelsCreatedTotal   prometheus.Counter
	ModelsDestroyedTotal prometheus.Counter
	RoutedTotal          *prometheus.CounterVec
	RateLimitedTotal     *prometheus.CounterVec
	RealTimeOverrunTotal prometheus.Counter
	TickDuration         prometheus.Histogram
}

// NewMetrics creates a Metrics instance registered with the default
// Prometheus registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a Metrics instance registered with
// registerer. Passing a nil registerer constructs the collectors without
// registering them, useful for tests that want isolated metrics.
func NewMetricsWithRegistry(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysexec_ticks_total",
			Help: "Total number of executor ticks processed.",
		}),
		ActiveModels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysexec_active_models",
			Help: "Current number of active models.",
		}),
		ScheduleQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysexec_schedule_queue_depth",
			Help: "Current number of models awaiting their next firing time.",
		}),
		ExternalInputDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysexec_external_input_depth",
			Help: "Current number of messages queued for external injection.",
		}),
		ExternalOutputDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysexec_external_output_depth",
			Help: "Current number of messages queued for external collection.",
		}),
		ModelsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysexec_models_created_total",
			Help: "Total number of models promoted from pending to active.",
		}),
		ModelsDestroyedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysexec_models_destroyed_total",
			Help: "Total number of models removed at their destruct time.",
		}),
		RoutedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sysexec_routed_messages_total",
			Help: "Total number of messages routed through the coupling graph, by destination.",
		}, []string{"destination"}),
		RateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sysexec_rate_limited_total",
			Help: "Total number of external events rejected by the ingress rate limiter, by port.",
		}, []string{"port"}),
		RealTimeOverrunTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysexec_realtime_overrun_total",
			Help: "Total number of ticks in the RealTime regime that could not keep pace with the wall clock.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sysexec_tick_duration_seconds",
			Help:    "Wall-clock duration of a single executor tick.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.TicksTotal,
			m.ActiveModels,
			m.ScheduleQueueDepth,
			m.ExternalInputDepth,
			m.ExternalOutputDepth,
			m.ModelsCreatedTotal,
			m.ModelsDestroyedTotal,
			m.RoutedTotal,
			m.RateLimitedTotal,
			m.RealTimeOverrunTotal,
			m.TickDuration,
		)
	}

	return m
}
