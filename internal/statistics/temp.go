package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const tempSubsystem = "temp"

type TempCollector struct {
	source SnapshotSource

	value       *prometheus.Desc
	min         *prometheus.Desc
	max         *prometheus.Desc
	isPanic     *prometheus.Desc
	isThreshold *prometheus.Desc
	isFailing   *prometheus.Desc
}

func NewTempCollector(source SnapshotSource) *TempCollector {
	return &TempCollector{
		source: source,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "value"),
			"Filtered value of the temperature source in degrees Celsius",
			[]string{"temp"}, nil,
		),
		min: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "min"),
			"Temperature at which the mapped fans start spinning",
			[]string{"temp"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "max"),
			"Temperature at which the mapped fans run at full speed",
			[]string{"temp"}, nil,
		),
		isPanic: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "is_panic"),
			"Whether the temp is above its panic threshold",
			[]string{"temp"}, nil,
		),
		isThreshold: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "is_threshold"),
			"Whether the temp is above its threshold",
			[]string{"temp"}, nil,
		),
		isFailing: prometheus.NewDesc(prometheus.BuildFQName(namespace, tempSubsystem, "is_failing"),
			"Whether the last reading of the temp failed",
			[]string{"temp"}, nil,
		),
	}
}

func (collector *TempCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.min
	ch <- collector.max
	ch <- collector.isPanic
	ch <- collector.isThreshold
	ch <- collector.isFailing
}

func (collector *TempCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Snapshot()
	for name, state := range snapshot.Temps {
		tempName := string(name)
		ch <- prometheus.MustNewConstMetric(collector.isFailing, prometheus.GaugeValue, boolValue(state.Err != nil), tempName)
		if state.Err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, state.FilteredValue, tempName)
		ch <- prometheus.MustNewConstMetric(collector.min, prometheus.GaugeValue, state.Status.Min, tempName)
		ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, state.Status.Max, tempName)
		ch <- prometheus.MustNewConstMetric(collector.isPanic, prometheus.GaugeValue, boolValue(state.Status.IsPanic), tempName)
		ch <- prometheus.MustNewConstMetric(collector.isThreshold, prometheus.GaugeValue, boolValue(state.Status.IsThreshold), tempName)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
