package configuration

import "fmt"

// AlertCommands is a pair of shell commands run when an alert state is
// entered and left. Either command may be unset.
type AlertCommands struct {
	EnterCmd *string
	LeaveCmd *string
}

// Actions binds the panic and threshold alert commands of a scope.
type Actions struct {
	Panic     AlertCommands
	Threshold AlertCommands
}

// TriggerConfig holds the global alert commands plus the per-temp overrides.
type TriggerConfig struct {
	GlobalCommands Actions
	TempCommands   map[TempName]Actions
}

func parseActions(sections []rawSection) (string, Actions, error) {
	actionsSections := sectionsOf(sections, "actions")
	if len(actionsSections) > 1 {
		return "", Actions{}, fmt.Errorf("duplicate actions section declaration")
	}

	sec := emptySection("actions")
	if len(actionsSections) == 1 {
		if actionsSections[0].instance != "" {
			return "", Actions{}, fmt.Errorf(
				"the actions section must not have an instance name, got 'actions:%s'", actionsSections[0].instance)
		}
		sec = actionsSections[0].section()
	}

	reportCmd := sec.getDefault("report_cmd", DefaultReportCmd)

	panic := AlertCommands{
		EnterCmd: sec.getOptional("panic_enter_cmd"),
		LeaveCmd: sec.getOptional("panic_leave_cmd"),
	}
	threshold := AlertCommands{
		EnterCmd: sec.getOptional("threshold_enter_cmd"),
		LeaveCmd: sec.getOptional("threshold_leave_cmd"),
	}

	if err := sec.ensureNoUnusedKeys(); err != nil {
		return "", Actions{}, err
	}

	return reportCmd, Actions{Panic: panic, Threshold: threshold}, nil
}
