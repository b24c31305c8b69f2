package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Namespace = "ketama"

	ReconfigureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "cluster",
		Name:      "reconfigure_total",
		Help:      "Counter of cluster reconfiguration attempts by status",
	}, []string{"status"})

	ConfigValid = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "cluster",
		Name:      "config_valid",
		Help:      "Whether the currently installed cluster generation is valid",
	})

	ClusterServers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "cluster",
		Name:      "servers",
		Help:      "Number of servers in the current cluster generation",
	})

	ContinuumPoints = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "cluster",
		Name:      "continuum_points",
		Help:      "Number of points on the current ketama continuum",
	})

	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "cluster",
		Name:      "lookups_total",
		Help:      "Counter of key ownership lookups by outcome",
	}, []string{"outcome"})
)
