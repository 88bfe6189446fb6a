package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/afancontrol/afancontrol/internal/controller"
)

const (
	namespace = "afancontrol"
)

// SnapshotSource provides the state of the last completed control tick.
type SnapshotSource interface {
	Snapshot() controller.Snapshot
}

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
