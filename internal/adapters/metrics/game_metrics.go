package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "ogame"
	subsystem = "daemon"
)

// Registry is the global Prometheus registry. Nil when metrics are
// disabled; every record call tolerates that.
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry. Called once at
// startup when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// GameMetricsCollector holds the simulation-level metrics
type GameMetricsCollector struct {
	tickDuration   *prometheus.HistogramVec
	queueDepth     *prometheus.GaugeVec
	activeMissions prometheus.Gauge
	planetCount    *prometheus.GaugeVec
	aiActions      *prometheus.CounterVec
	completions    *prometheus.CounterVec
	flushes        prometheus.Counter
}

// NewGameMetricsCollector creates the simulation metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		tickDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tick_duration_seconds",
				Help:      "Tick duration distribution by loop",
				Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"loop"},
		),
		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Pending items across all planets by queue kind",
			},
			[]string{"kind"},
		),
		activeMissions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_missions",
				Help:      "Missions currently in flight or returning",
			},
		),
		planetCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "planets",
				Help:      "Registered planets by owner",
			},
			[]string{"owner"},
		),
		aiActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ai_actions_total",
				Help:      "AI actions applied by category",
			},
			[]string{"category"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_completions_total",
				Help:      "Completed queue units by queue kind",
			},
			[]string{"kind"},
		),
		flushes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "persistence_flushes_total",
				Help:      "Write-behind flushes performed",
			},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{
		c.tickDuration,
		c.queueDepth,
		c.activeMissions,
		c.planetCount,
		c.aiActions,
		c.completions,
		c.flushes,
	} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObserveTick records one tick's wall duration for a named loop
func (c *GameMetricsCollector) ObserveTick(loop string, seconds float64) {
	c.tickDuration.WithLabelValues(loop).Observe(seconds)
}

// SetQueueDepth records the pending item count of a queue kind
func (c *GameMetricsCollector) SetQueueDepth(kind string, depth int) {
	c.queueDepth.WithLabelValues(kind).Set(float64(depth))
}

// SetActiveMissions records the active mission count
func (c *GameMetricsCollector) SetActiveMissions(count int) {
	c.activeMissions.Set(float64(count))
}

// SetPlanetCount records the planet count for an owner kind
func (c *GameMetricsCollector) SetPlanetCount(owner string, count int) {
	c.planetCount.WithLabelValues(owner).Set(float64(count))
}

// RecordAIAction counts one applied AI action
func (c *GameMetricsCollector) RecordAIAction(category string) {
	c.aiActions.WithLabelValues(category).Inc()
}

// RecordCompletions counts completed queue units
func (c *GameMetricsCollector) RecordCompletions(kind string, count int) {
	if count > 0 {
		c.completions.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordFlush counts one write-behind flush
func (c *GameMetricsCollector) RecordFlush() {
	c.flushes.Inc()
}
