package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the planner session.
type Metrics struct {
	ScenariosGenerated *prometheus.CounterVec // labels: source={canned,custom}
	Escalations        prometheus.Counter
	SupplyToggles      prometheus.Counter
	ContactsAdded      prometheus.Counter
	ContactsRemoved    prometheus.Counter
	RiskAnalyses       prometheus.Counter
	StoreErrors        *prometheus.CounterVec // labels: op={read,write}, key
	StaleCompletions   prometheus.Counter
	FeedEnabled        prometheus.Gauge
	FeedErrors         prometheus.Counter
}

// NewMetrics creates and registers all planner metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ScenariosGenerated,
		m.Escalations,
		m.SupplyToggles,
		m.ContactsAdded,
		m.ContactsRemoved,
		m.RiskAnalyses,
		m.StoreErrors,
		m.StaleCompletions,
		m.FeedEnabled,
		m.FeedErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ScenariosGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "scenarios_generated_total",
			Help:      "Scenarios activated, by source (canned or custom).",
		}, []string{"source"}),
		Escalations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "escalations_total",
			Help:      "Escalation steps applied to the active scenario.",
		}),
		SupplyToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "supply_toggles_total",
			Help:      "Supply checklist items toggled.",
		}),
		ContactsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "contacts_added_total",
			Help:      "Emergency contacts added.",
		}),
		ContactsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "contacts_removed_total",
			Help:      "Emergency contacts removed.",
		}),
		RiskAnalyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "risk_analyses_total",
			Help:      "Mock location risk analyses performed.",
		}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "store_errors_total",
			Help:      "Soft-failed store operations by op and key.",
		}, []string{"op", "key"}),
		StaleCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "stale_completions_total",
			Help:      "Delayed operations discarded because a newer request superseded them.",
		}),
		FeedEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "planner",
			Name:      "feed_enabled",
			Help:      "1 when the Kafka event feed is enabled, 0 otherwise.",
		}),
		FeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "feed_errors_total",
			Help:      "Event feed publish failures.",
		}),
	}
}
