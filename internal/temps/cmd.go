package temps

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/afancontrol/afancontrol/internal/util"
)

const commandTimeout = 5 * time.Second

// CommandTemp reads the temperature from the output of a shell command.
// The command prints the temperature and may optionally print the min and max
// values on the following lines, overriding the configured ones.
type CommandTemp struct {
	BaseTemp
	Command string
	hasMin  bool
	hasMax  bool
}

func NewCommandTemp(command string, min *float64, max *float64, panic *float64, threshold *float64) *CommandTemp {
	t := &CommandTemp{
		BaseTemp: BaseTemp{Panic: panic, Threshold: threshold},
		Command:  command,
	}
	if min != nil {
		t.Min = *min
	}
	t.hasMin = min != nil
	if max != nil {
		t.Max = *max
	}
	t.hasMax = max != nil
	return t
}

func (t *CommandTemp) Get() (TempStatus, error) {
	out, err := util.ExecShellCommand(t.Command, commandTimeout)
	if err != nil {
		return TempStatus{}, fmt.Errorf("temp command '%s' failed: %w", t.Command, err)
	}

	fields := strings.Fields(out)
	if len(fields) < 1 {
		return TempStatus{}, fmt.Errorf("temp command '%s' produced no output", t.Command)
	}

	values := make([]float64, 0, 3)
	for _, field := range fields[:minInt(len(fields), 3)] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return TempStatus{}, fmt.Errorf("temp command '%s' produced a non-numeric value '%s'", t.Command, field)
		}
		values = append(values, v)
	}

	min, max := t.Min, t.Max
	if len(values) >= 3 {
		min, max = values[1], values[2]
	} else if !t.hasMin || !t.hasMax {
		return TempStatus{}, fmt.Errorf(
			"temp command '%s' did not print min and max values and they are not configured", t.Command)
	}

	return t.status(values[0], min, max), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
