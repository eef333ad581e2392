package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of Prometheus collectors one World registers.
// Wired because spec.md's non-goals exclude SSH/HTTP front-ends and the
// CLI, never observability of the scheduler itself; grounded on the
// `prometheus/client_golang` dependency surfaced by the pack's
// ClusterCockpit-cc-backend and siderolabs-talemu manifests.
type Metrics struct {
	TickDuration prometheus.Histogram
	AliveBots    prometheus.Gauge
	QueuedBots   prometheus.Gauge
	DeadBots     prometheus.Gauge
	Faults       *prometheus.CounterVec
	Spawns       prometheus.Counter
	Kills        prometheus.Counter
}

// NewMetrics builds a fresh, unregistered Metrics set labeled with the
// owning world's id so multiple worlds in one process don't collide.
func NewMetrics(worldID string) *Metrics {
	labels := prometheus.Labels{"world": worldID}
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "tick_duration_seconds",
			Help:        "Wall-clock duration of one simulation tick.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
		AliveBots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "alive_bots",
			Help:        "Number of bots currently alive.",
			ConstLabels: labels,
		}),
		QueuedBots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "queued_bots",
			Help:        "Number of bots waiting for a free alive slot.",
			ConstLabels: labels,
		}),
		DeadBots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "dead_bots",
			Help:        "Number of entries in the dead-bot history.",
			ConstLabels: labels,
		}),
		Faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "cpu_faults_total",
			Help:        "CPU faults by kind that have killed a bot.",
			ConstLabels: labels,
		}, []string{"kind"}),
		Spawns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "spawns_total",
			Help:        "Bots successfully moved from queued to alive.",
			ConstLabels: labels,
		}),
		Kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "botarena",
			Subsystem:   "world",
			Name:        "kills_total",
			Help:        "Bots moved from alive to dead.",
			ConstLabels: labels,
		}),
	}
}

// Register adds every collector in m to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.TickDuration, m.AliveBots, m.QueuedBots, m.DeadBots,
		m.Faults, m.Spawns, m.Kills,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
