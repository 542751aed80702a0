package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CommitteeMetrics holds the Prometheus metrics for the committee module
type CommitteeMetrics struct {
	ProposalsCreated  prometheus.Counter
	ProposalsExecuted prometheus.Counter
	RoundsAdvanced    prometheus.Counter
	RegistrySize      prometheus.Gauge
	CommitteeSize     prometheus.Gauge
}

var (
	metricsOnce      sync.Once
	committeeMetrics *CommitteeMetrics
)

// metrics returns the module metrics singleton, registering collectors on
// first use.
func metrics() *CommitteeMetrics {
	metricsOnce.Do(func() {
		committeeMetrics = &CommitteeMetrics{
			ProposalsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "attest",
				Subsystem: "committee",
				Name:      "proposals_created_total",
				Help:      "Total number of proposals created",
			}),
			ProposalsExecuted: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "attest",
				Subsystem: "committee",
				Name:      "proposals_executed_total",
				Help:      "Total number of proposals executed",
			}),
			RoundsAdvanced: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "attest",
				Subsystem: "committee",
				Name:      "rounds_advanced_total",
				Help:      "Total number of round transitions",
			}),
			RegistrySize: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "attest",
				Subsystem: "committee",
				Name:      "registry_size",
				Help:      "Number of registered validators",
			}),
			CommitteeSize: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "attest",
				Subsystem: "committee",
				Name:      "committee_size",
				Help:      "Number of validators in the current committee",
			}),
		}
	})
	return committeeMetrics
}
