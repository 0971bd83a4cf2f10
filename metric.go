package clawlaunch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const MetricNameSpace = "clawlaunch"

var (
	launchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "launch_total",
			Help:      "launch outcomes by terminal status",
		},
		[]string{"status"},
	)

	saltSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "salt_source_total",
			Help:      "which mining strategy produced the salt",
		},
		[]string{"mined"},
	)

	scanMentions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "scan_mentions_total",
			Help:      "mentions seen by the scan loop",
		},
	)

	currentBlockGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "current_block",
			Help:      "latest observed block number",
		},
	)
)

func init() {
	prometheus.MustRegister(
		launchTotal,
		saltSourceTotal,
		scanMentions,
		currentBlockGauge,
	)
}

func metricLaunch(status string) {
	launchTotal.WithLabelValues(status).Inc()
}

func metricSaltMined(mined bool) {
	lbl := "false"
	if mined {
		lbl = "true"
	}
	saltSourceTotal.WithLabelValues(lbl).Inc()
}

func metricCurrentBlock(block uint64) {
	currentBlockGauge.Set(float64(block))
}
