package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	source SnapshotSource

	pwm       *prometheus.Desc
	rpm       *prometheus.Desc
	isFailing *prometheus.Desc
}

func NewFanCollector(source SnapshotSource) *FanCollector {
	return &FanCollector{
		source: source,
		pwm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "pwm"),
			"PWM value the fan was last commanded with",
			[]string{"fan"}, nil,
		),
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm"),
			"Current RPM value of the fan",
			[]string{"fan"}, nil,
		),
		isFailing: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "is_failing"),
			"Whether the last operation on the fan failed",
			[]string{"fan"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pwm
	ch <- collector.rpm
	ch <- collector.isFailing
}

func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Snapshot()
	for name, state := range snapshot.Fans {
		fanName := string(name)
		ch <- prometheus.MustNewConstMetric(collector.isFailing, prometheus.GaugeValue, boolValue(state.Err != nil), fanName)
		if state.Err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.pwm, prometheus.GaugeValue, float64(state.PWM), fanName)
		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(state.RPM), fanName)
	}
	for name, state := range snapshot.ReadonlyFans {
		fanName := string(name)
		ch <- prometheus.MustNewConstMetric(collector.isFailing, prometheus.GaugeValue, boolValue(state.Err != nil), fanName)
		if state.Err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(state.RPM), fanName)
	}
}
