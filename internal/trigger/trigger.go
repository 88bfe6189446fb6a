package trigger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/afancontrol/afancontrol/internal/configuration"
	"github.com/afancontrol/afancontrol/internal/ui"
	"github.com/afancontrol/afancontrol/internal/util"
)

const alertCmdTimeout = 10 * time.Second

// Reporter delivers a human-readable notification about an alert transition.
type Reporter interface {
	Report(reason string, message string)
}

// TempState is the per-tick alert-relevant state of a single temperature
// source. A failed reading is escalated to panic, since a fan daemon that
// cannot see a temperature must assume the worst.
type TempState struct {
	IsPanic     bool
	IsThreshold bool
	Err         error
}

// Trigger tracks the panic and threshold alert modes across control ticks.
// Entering or leaving a mode runs the configured alert commands, both the
// per-temp ones and the global ones, and sends a report.
type Trigger struct {
	config   configuration.TriggerConfig
	reporter Reporter

	panicTemps     map[configuration.TempName]bool
	thresholdTemps map[configuration.TempName]bool
	panicMode      bool
	thresholdMode  bool

	execCmd func(command string) (string, error)
}

func New(config configuration.TriggerConfig, reporter Reporter) *Trigger {
	return &Trigger{
		config:         config,
		reporter:       reporter,
		panicTemps:     map[configuration.TempName]bool{},
		thresholdTemps: map[configuration.TempName]bool{},
		execCmd: func(command string) (string, error) {
			return util.ExecShellCommand(command, alertCmdTimeout)
		},
	}
}

func (t *Trigger) IsPanic() bool {
	return t.panicMode
}

func (t *Trigger) IsThreshold() bool {
	return t.thresholdMode
}

// Update processes one tick worth of temperature states and fires the
// resulting alert transitions.
func (t *Trigger) Update(states map[configuration.TempName]TempState) {
	for name, state := range states {
		t.updateTemp(name, state)
	}

	t.updateGlobalMode(
		"panic", &t.panicMode, t.panicTemps, states,
		t.config.GlobalCommands.Panic)
	t.updateGlobalMode(
		"threshold", &t.thresholdMode, t.thresholdTemps, states,
		t.config.GlobalCommands.Threshold)
}

func (t *Trigger) updateTemp(name configuration.TempName, state TempState) {
	actions := t.config.TempCommands[name]

	isPanic := state.IsPanic || state.Err != nil
	if isPanic != t.panicTemps[name] {
		t.panicTemps[name] = isPanic
		t.runAlertCmd(actions.Panic, isPanic)
	}

	if state.IsThreshold != t.thresholdTemps[name] {
		t.thresholdTemps[name] = state.IsThreshold
		t.runAlertCmd(actions.Threshold, state.IsThreshold)
	}
}

func (t *Trigger) updateGlobalMode(
	mode string,
	current *bool,
	temps map[configuration.TempName]bool,
	states map[configuration.TempName]TempState,
	commands configuration.AlertCommands,
) {
	active := false
	for _, on := range temps {
		if on {
			active = true
			break
		}
	}
	if active == *current {
		return
	}
	*current = active

	if active {
		ui.Warning("Entering the %s mode", mode)
		t.runAlertCmd(commands, true)
		t.reporter.Report(
			fmt.Sprintf("%s mode ON", mode),
			describeTemps(temps, states))
	} else {
		ui.Info("Leaving the %s mode", mode)
		t.runAlertCmd(commands, false)
		t.reporter.Report(
			fmt.Sprintf("%s mode OFF", mode),
			"The temperatures are not critical anymore")
	}
}

func (t *Trigger) runAlertCmd(commands configuration.AlertCommands, entering bool) {
	cmd := commands.LeaveCmd
	if entering {
		cmd = commands.EnterCmd
	}
	if cmd == nil {
		return
	}
	if _, err := t.execCmd(*cmd); err != nil {
		ui.Warning("Alert command failed: %s: %v", *cmd, err)
	}
}

func describeTemps(
	alerting map[configuration.TempName]bool,
	states map[configuration.TempName]TempState,
) string {
	var lines []string
	for name, on := range alerting {
		if !on {
			continue
		}
		state := states[name]
		if state.Err != nil {
			lines = append(lines, fmt.Sprintf("%s: failed to read: %v", name, state.Err))
		} else {
			lines = append(lines, string(name))
		}
	}
	sort.Strings(lines)
	return "Alerting temps:\n" + strings.Join(lines, "\n")
}
