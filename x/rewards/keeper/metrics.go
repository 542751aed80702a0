package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RewardsMetrics holds the Prometheus metrics for the rewards module
type RewardsMetrics struct {
	DistributionsCreated prometheus.Counter
	ClaimsProcessed      prometheus.Counter
	LatestDistributionID prometheus.Gauge
	EmissionRate         prometheus.Gauge
}

var (
	metricsOnce    sync.Once
	rewardsMetrics *RewardsMetrics
)

// metrics returns the module metrics singleton, registering collectors on
// first use.
func metrics() *RewardsMetrics {
	metricsOnce.Do(func() {
		rewardsMetrics = &RewardsMetrics{
			DistributionsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "attest",
				Subsystem: "rewards",
				Name:      "distributions_created_total",
				Help:      "Total number of reward distributions created",
			}),
			ClaimsProcessed: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "attest",
				Subsystem: "rewards",
				Name:      "claims_processed_total",
				Help:      "Total number of reward claims processed",
			}),
			LatestDistributionID: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "attest",
				Subsystem: "rewards",
				Name:      "latest_distribution_id",
				Help:      "Id of the most recently created distribution",
			}),
			EmissionRate: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "attest",
				Subsystem: "rewards",
				Name:      "emission_rate",
				Help:      "Current per-second emission rate of the primary asset",
			}),
		}
	})
	return rewardsMetrics
}
