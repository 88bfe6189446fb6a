package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const daemonSubsystem = "daemon"

type DaemonCollector struct {
	source SnapshotSource

	isPanic      *prometheus.Desc
	isThreshold  *prometheus.Desc
	tickDuration *prometheus.Desc
}

func NewDaemonCollector(source SnapshotSource) *DaemonCollector {
	return &DaemonCollector{
		source: source,
		isPanic: prometheus.NewDesc(prometheus.BuildFQName(namespace, daemonSubsystem, "is_panic"),
			"Whether the daemon is in the panic mode",
			nil, nil,
		),
		isThreshold: prometheus.NewDesc(prometheus.BuildFQName(namespace, daemonSubsystem, "is_threshold"),
			"Whether the daemon is in the threshold mode",
			nil, nil,
		),
		tickDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, daemonSubsystem, "tick_duration_seconds"),
			"Duration of the last control tick",
			nil, nil,
		),
	}
}

func (collector *DaemonCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.isPanic
	ch <- collector.isThreshold
	ch <- collector.tickDuration
}

func (collector *DaemonCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.isPanic, prometheus.GaugeValue, boolValue(snapshot.PanicMode))
	ch <- prometheus.MustNewConstMetric(collector.isThreshold, prometheus.GaugeValue, boolValue(snapshot.ThresholdMode))
	ch <- prometheus.MustNewConstMetric(collector.tickDuration, prometheus.GaugeValue, snapshot.TickDuration.Seconds())
}
