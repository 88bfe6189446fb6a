package filters

import (
	"github.com/asecurityteam/rolling"

	"github.com/afancontrol/afancontrol/internal/util"
)

// TempFilter smooths a stream of temperature readings. Filters carry their
// own sliding-window state, so a filter instance must never be shared between
// two temperature sources; Copy produces a fresh instance with an empty window.
type TempFilter interface {
	// Apply feeds a new reading into the filter and returns the smoothed value.
	Apply(value float64) float64
	Copy() TempFilter
}

type NullFilter struct{}

func (f NullFilter) Apply(value float64) float64 {
	return value
}

func (f NullFilter) Copy() TempFilter {
	return NullFilter{}
}

type MovingMedianFilter struct {
	WindowSize int
	window     *rolling.PointPolicy
	seeded     bool
}

func NewMovingMedianFilter(windowSize int) *MovingMedianFilter {
	return &MovingMedianFilter{
		WindowSize: windowSize,
		window:     util.CreateRollingWindow(windowSize),
	}
}

func (f *MovingMedianFilter) Apply(value float64) float64 {
	// the window buckets start out as zeros, so the very first reading
	// saturates the window instead of being averaged against them
	if !f.seeded {
		util.FillWindow(f.window, f.WindowSize, value)
		f.seeded = true
	} else {
		f.window.Append(value)
	}
	return f.window.Reduce(rolling.Percentile(50))
}

func (f *MovingMedianFilter) Copy() TempFilter {
	return NewMovingMedianFilter(f.WindowSize)
}

type MovingQuantileFilter struct {
	Quantile   float64
	WindowSize int
	window     *rolling.PointPolicy
	seeded     bool
}

func NewMovingQuantileFilter(quantile float64, windowSize int) *MovingQuantileFilter {
	return &MovingQuantileFilter{
		Quantile:   quantile,
		WindowSize: windowSize,
		window:     util.CreateRollingWindow(windowSize),
	}
}

func (f *MovingQuantileFilter) Apply(value float64) float64 {
	if !f.seeded {
		util.FillWindow(f.window, f.WindowSize, value)
		f.seeded = true
	} else {
		f.window.Append(value)
	}
	return f.window.Reduce(rolling.Percentile(f.Quantile * 100))
}

func (f *MovingQuantileFilter) Copy() TempFilter {
	return NewMovingQuantileFilter(f.Quantile, f.WindowSize)
}
