package controller

import (
	"context"
	"sync"
	"time"

	"github.com/afancontrol/afancontrol/internal/configuration"
	"github.com/afancontrol/afancontrol/internal/fans"
	"github.com/afancontrol/afancontrol/internal/temps"
	"github.com/afancontrol/afancontrol/internal/trigger"
	"github.com/afancontrol/afancontrol/internal/ui"
	"github.com/afancontrol/afancontrol/internal/util"
)

// TempState is the outcome of reading a single temperature source during a
// tick. FilteredValue is the smoothed reading that drives the fan speeds,
// Status keeps the raw reading and its alert flags.
type TempState struct {
	Status        temps.TempStatus
	FilteredValue float64
	Err           error
}

type FanState struct {
	PWM fans.PWMValue
	RPM int
	Err error
}

type ReadonlyFanState struct {
	RPM  int
	Norm float64
	Err  error
}

// Snapshot is the state of the last completed tick, kept for the metrics
// exporter.
type Snapshot struct {
	Temps         map[configuration.TempName]TempState
	Fans          map[configuration.FanName]FanState
	ReadonlyFans  map[configuration.ReadonlyFanName]ReadonlyFanState
	PanicMode     bool
	ThresholdMode bool
	TickDuration  time.Duration
}

// Controller runs the periodic control loop: read temps, update the alert
// modes, compute the fan speeds and command the fans.
type Controller struct {
	config  *configuration.ParsedConfig
	trigger *trigger.Trigger

	mu       sync.RWMutex
	snapshot Snapshot
}

func New(config *configuration.ParsedConfig, trig *trigger.Trigger) *Controller {
	return &Controller{
		config:  config,
		trigger: trig,
	}
}

// Run ticks the control loop at the configured interval until the context is
// cancelled. The first tick happens immediately.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.config.Daemon.Interval)
	defer ticker.Stop()

	c.Tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Controller) Tick() {
	started := time.Now()

	tempStates := c.readTemps()
	c.trigger.Update(triggerStates(tempStates))

	speeds := ComputeFanSpeeds(tempStates, c.config.Mappings, c.trigger.IsPanic())

	fanStates := map[configuration.FanName]FanState{}
	for name, fan := range c.config.Fans {
		state := FanState{}
		state.PWM, state.Err = fan.Set(speeds[name])
		if state.Err != nil {
			ui.Warning("Unable to set the speed of the fan '%s': %v", name, state.Err)
		} else if rpm, err := fan.GetSpeed(); err == nil {
			state.RPM = rpm
		}
		fanStates[name] = state
	}

	readonlyStates := map[configuration.ReadonlyFanName]ReadonlyFanState{}
	for name, fan := range c.config.ReadonlyFans {
		state := ReadonlyFanState{}
		state.RPM, state.Err = fan.GetSpeed()
		if state.Err != nil {
			ui.Warning("Unable to read the speed of the fan '%s': %v", name, state.Err)
		} else {
			state.Norm, _ = fan.GetNorm()
		}
		readonlyStates[name] = state
	}

	c.mu.Lock()
	c.snapshot = Snapshot{
		Temps:         tempStates,
		Fans:          fanStates,
		ReadonlyFans:  readonlyStates,
		PanicMode:     c.trigger.IsPanic(),
		ThresholdMode: c.trigger.IsThreshold(),
		TickDuration:  time.Since(started),
	}
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Controller) readTemps() map[configuration.TempName]TempState {
	states := map[configuration.TempName]TempState{}
	for name, filteredTemp := range c.config.Temps {
		status, err := filteredTemp.Temp.Get()
		if err != nil {
			ui.Warning("Unable to read the temp '%s': %v", name, err)
			states[name] = TempState{Err: err}
			continue
		}
		states[name] = TempState{
			Status:        status,
			FilteredValue: filteredTemp.Filter.Apply(status.Value),
		}
	}
	return states
}

func triggerStates(states map[configuration.TempName]TempState) map[configuration.TempName]trigger.TempState {
	out := map[configuration.TempName]trigger.TempState{}
	for name, state := range states {
		out[name] = trigger.TempState{
			IsPanic:     state.Status.IsPanic,
			IsThreshold: state.Status.IsThreshold,
			Err:         state.Err,
		}
	}
	return out
}

// TempSpeed converts a temperature state into a normalized speed demand.
// Alerting and unreadable temps demand full speed.
func TempSpeed(state TempState) float64 {
	if state.Err != nil || state.Status.IsPanic || state.Status.IsThreshold {
		return 1.0
	}
	return util.Clamp(
		util.Ratio(state.FilteredValue, state.Status.Min, state.Status.Max),
		0.0, 1.0)
}

// ComputeFanSpeeds resolves the per-fan normalized speeds: each mapping
// demands the speed of its hottest temp, each fan takes the highest demand
// across its mappings scaled by the fan modifier. Panic mode overrides
// everything with full speed.
func ComputeFanSpeeds(
	states map[configuration.TempName]TempState,
	mappings map[configuration.MappingName]configuration.FansTempsRelation,
	panicMode bool,
) map[configuration.FanName]float64 {
	speeds := map[configuration.FanName]float64{}
	for _, mapping := range mappings {
		demand := 0.0
		for _, tempName := range mapping.Temps {
			if speed := TempSpeed(states[tempName]); speed > demand {
				demand = speed
			}
		}
		for _, fanModifier := range mapping.Fans {
			speed := demand * fanModifier.Modifier
			if panicMode {
				speed = 1.0
			}
			if current, ok := speeds[fanModifier.Fan]; !ok || speed > current {
				speeds[fanModifier.Fan] = speed
			}
		}
	}
	return speeds
}
