package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colonycore-go/internal/application/tick"
)

const (
	// Namespace for all metrics
	namespace = "colonycore"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

// TickMetricsCollector exports per-tick orchestrator telemetry to Prometheus.
// It implements the application layer's TelemetryRecorder port.
type TickMetricsCollector struct {
	ticksTotal       prometheus.Counter
	worldsProcessed  prometheus.Gauge
	agentsProcessed  prometheus.Gauge
	agentErrors      prometheus.Counter
	worldErrors      prometheus.Counter
	spawnsRequested  prometheus.Counter
	ordersCreated    prometheus.Counter
	recordsRemoved   prometheus.Counter
	tickDuration     prometheus.Histogram
	budgetFraction   prometheus.Gauge
	budgetExceeded   prometheus.Counter
}

// NewTickMetricsCollector creates and registers the tick telemetry metrics.
func NewTickMetricsCollector(registry *prometheus.Registry) *TickMetricsCollector {
	c := &TickMetricsCollector{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ticks_total",
			Help:      "Total number of ticks executed",
		}),
		worldsProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "worlds_processed",
			Help:      "Number of worlds processed in the last tick",
		}),
		agentsProcessed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "agents_processed",
			Help:      "Number of agents processed in the last tick",
		}),
		agentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "agent_errors_total",
			Help:      "Total number of isolated per-agent failures",
		}),
		worldErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "world_errors_total",
			Help:      "Total number of per-world processing failures",
		}),
		spawnsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "spawns_requested_total",
			Help:      "Total number of agent productions started",
		}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "market_orders_created_total",
			Help:      "Total number of market orders opened by the exchange",
		}),
		recordsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "records_removed_total",
			Help:      "Total number of agent records reconciled away",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of each tick",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		budgetFraction: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_budget_fraction",
			Help:      "Fraction of the compute budget used by the last tick",
		}),
		budgetExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_budget_high_water_total",
			Help:      "Total number of ticks over the budget high-water mark",
		}),
	}

	registry.MustRegister(
		c.ticksTotal,
		c.worldsProcessed,
		c.agentsProcessed,
		c.agentErrors,
		c.worldErrors,
		c.spawnsRequested,
		c.ordersCreated,
		c.recordsRemoved,
		c.tickDuration,
		c.budgetFraction,
		c.budgetExceeded,
	)
	return c
}

// RecordTick publishes one tick summary.
func (c *TickMetricsCollector) RecordTick(summary *tick.TickSummary) {
	c.ticksTotal.Inc()
	c.worldsProcessed.Set(float64(summary.WorldsProcessed))
	c.agentsProcessed.Set(float64(summary.AgentsProcessed))
	c.agentErrors.Add(float64(summary.AgentErrors))
	c.worldErrors.Add(float64(summary.WorldErrors))
	c.spawnsRequested.Add(float64(summary.SpawnsRequested))
	c.ordersCreated.Add(float64(summary.OrdersCreated))
	c.recordsRemoved.Add(float64(summary.RecordsRemoved))
	c.tickDuration.Observe(summary.Duration.Seconds())
	c.budgetFraction.Set(summary.BudgetFraction)
	if summary.OverHighWater {
		c.budgetExceeded.Inc()
	}
}

var _ tick.TelemetryRecorder = (*TickMetricsCollector)(nil)
