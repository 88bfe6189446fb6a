package configuration

import (
	"fmt"
	"strings"

	"github.com/afancontrol/afancontrol/internal/filters"
	"github.com/afancontrol/afancontrol/internal/temps"
)

const (
	TempTypeFile    = "file"
	TempTypeHDD     = "hdd"
	TempTypeCommand = "exec"

	DefaultHDDTempDiskPath = "/dev/sd?"
	DefaultHDDTempMin      = 38.0
	DefaultHDDTempMax      = 45.0
)

func parseTemps(
	sections []rawSection,
	hddtemp string,
	tempFilters map[FilterName]filters.TempFilter,
) (map[TempName]FilteredTemp, map[TempName]Actions, error) {
	compiled := map[TempName]FilteredTemp{}
	tempCommands := map[TempName]Actions{}
	for _, raw := range sectionsOf(sections, "temp") {
		name := TempName(raw.instance)
		if _, ok := compiled[name]; ok {
			return nil, nil, fmt.Errorf("duplicate temp section declaration for '%s'", name)
		}

		sec := raw.section()

		actionsPanic := AlertCommands{
			EnterCmd: sec.getOptional("panic_enter_cmd"),
			LeaveCmd: sec.getOptional("panic_leave_cmd"),
		}
		actionsThreshold := AlertCommands{
			EnterCmd: sec.getOptional("threshold_enter_cmd"),
			LeaveCmd: sec.getOptional("threshold_leave_cmd"),
		}

		tempType, err := sec.get("type")
		if err != nil {
			return nil, nil, err
		}

		var t temps.Temp
		switch tempType {
		case TempTypeFile:
			t, err = buildFileTemp(sec)
		case TempTypeHDD:
			t, err = buildHDDTemp(sec, hddtemp)
		case TempTypeCommand:
			t, err = buildCommandTemp(sec)
		default:
			return nil, nil, fmt.Errorf(
				"unsupported temp type '%s' for the temp '%s', supported types: %s, %s, %s",
				tempType, name, TempTypeFile, TempTypeHDD, TempTypeCommand)
		}
		if err != nil {
			return nil, nil, err
		}

		var filter filters.TempFilter = filters.NullFilter{}
		if filterName := sec.getOptional("filter"); filterName != nil {
			template, ok := tempFilters[FilterName(strings.TrimSpace(*filterName))]
			if !ok {
				return nil, nil, fmt.Errorf("unknown filter '%s' for the temp '%s'", *filterName, name)
			}
			// each temp owns an independent copy of the shared declaration
			filter = template.Copy()
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, nil, err
		}

		compiled[name] = FilteredTemp{Temp: t, Filter: filter}
		tempCommands[name] = Actions{Panic: actionsPanic, Threshold: actionsThreshold}
	}

	return compiled, tempCommands, nil
}

func buildFileTemp(sec *section) (temps.Temp, error) {
	path, err := sec.get("path")
	if err != nil {
		return nil, err
	}
	min, err := sec.getOptionalFloat("min")
	if err != nil {
		return nil, err
	}
	max, err := sec.getOptionalFloat("max")
	if err != nil {
		return nil, err
	}
	panic, threshold, err := alertThresholds(sec)
	if err != nil {
		return nil, err
	}
	return temps.NewFileTemp(path, min, max, panic, threshold), nil
}

func buildHDDTemp(sec *section, hddtemp string) (temps.Temp, error) {
	diskPath := sec.getDefault("path", DefaultHDDTempDiskPath)
	min, err := sec.getFloat("min", DefaultHDDTempMin)
	if err != nil {
		return nil, err
	}
	max, err := sec.getFloat("max", DefaultHDDTempMax)
	if err != nil {
		return nil, err
	}
	panic, threshold, err := alertThresholds(sec)
	if err != nil {
		return nil, err
	}
	return temps.NewHDDTemp(hddtemp, diskPath, min, max, panic, threshold), nil
}

func buildCommandTemp(sec *section) (temps.Temp, error) {
	command, err := sec.get("command")
	if err != nil {
		return nil, err
	}
	min, err := sec.getOptionalFloat("min")
	if err != nil {
		return nil, err
	}
	max, err := sec.getOptionalFloat("max")
	if err != nil {
		return nil, err
	}
	panic, threshold, err := alertThresholds(sec)
	if err != nil {
		return nil, err
	}
	return temps.NewCommandTemp(command, min, max, panic, threshold), nil
}

func alertThresholds(sec *section) (panic *float64, threshold *float64, err error) {
	panic, err = sec.getOptionalFloat("panic")
	if err != nil {
		return nil, nil, err
	}
	threshold, err = sec.getOptionalFloat("threshold")
	if err != nil {
		return nil, nil, err
	}
	return panic, threshold, nil
}
