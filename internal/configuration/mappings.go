package configuration

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/afancontrol/afancontrol/internal/fans"
	"github.com/afancontrol/afancontrol/internal/ui"
)

// FanSpeedModifier scales the duty cycle a mapping computes for one fan.
// The modifier must lie in (0.0, 1.0].
type FanSpeedModifier struct {
	Fan      FanName
	Modifier float64
}

// FansTempsRelation is a many-to-many grouping: all temps of the set jointly
// drive all fans of the set.
type FansTempsRelation struct {
	Temps []TempName
	Fans  []FanSpeedModifier
}

func parseMappings(
	sections []rawSection,
	writableFans map[FanName]*fans.PWMFanNorm,
	compiledTemps map[TempName]FilteredTemp,
) (map[MappingName]FansTempsRelation, error) {
	mappings := map[MappingName]FansTempsRelation{}
	for _, raw := range sectionsOf(sections, "mapping") {
		name := MappingName(raw.instance)
		if _, ok := mappings[name]; ok {
			return nil, fmt.Errorf("duplicate mapping section declaration for '%s'", name)
		}

		sec := raw.section()

		mappingTemps, err := parseMappingTemps(sec, name, compiledTemps)
		if err != nil {
			return nil, err
		}
		mappingFans, err := parseMappingFans(sec, name, writableFans)
		if err != nil {
			return nil, err
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, err
		}

		mappings[name] = FansTempsRelation{Temps: mappingTemps, Fans: mappingFans}
	}

	if err := checkMappingCoverage(mappings, writableFans, compiledTemps); err != nil {
		return nil, err
	}

	return mappings, nil
}

func parseMappingTemps(
	sec *section,
	name MappingName,
	compiledTemps map[TempName]FilteredTemp,
) ([]TempName, error) {
	rawTemps, err := sec.get("temps")
	if err != nil {
		return nil, err
	}

	var mappingTemps []TempName
	for _, token := range strings.Split(rawTemps, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		mappingTemps = append(mappingTemps, TempName(token))
	}

	if len(mappingTemps) == 0 {
		return nil, fmt.Errorf("temps must not be empty in the '%s' mapping", name)
	}

	seen := map[TempName]bool{}
	for _, tempName := range mappingTemps {
		if _, ok := compiledTemps[tempName]; !ok {
			return nil, fmt.Errorf("unknown temp '%s' in the mapping '%s'", tempName, name)
		}
		if seen[tempName] {
			return nil, fmt.Errorf("there are duplicate temps in the mapping '%s'", name)
		}
		seen[tempName] = true
	}

	return mappingTemps, nil
}

func parseMappingFans(
	sec *section,
	name MappingName,
	writableFans map[FanName]*fans.PWMFanNorm,
) ([]FanSpeedModifier, error) {
	rawFans, err := sec.get("fans")
	if err != nil {
		return nil, err
	}

	var mappingFans []FanSpeedModifier
	for _, token := range strings.Split(rawFans, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		// a token is either `fan_name` or `fan_name * modifier`
		parts := strings.Split(token, "*")
		if len(parts) > 2 {
			return nil, fmt.Errorf("invalid fan specification '%s' in the mapping '%s'", token, name)
		}

		modifier := 1.0
		if len(parts) == 2 {
			modifier, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid fan modifier '%s' in the mapping '%s'", strings.TrimSpace(parts[1]), name)
			}
		}

		mappingFans = append(mappingFans, FanSpeedModifier{
			Fan:      FanName(strings.TrimSpace(parts[0])),
			Modifier: modifier,
		})
	}

	seen := map[FanName]bool{}
	for _, fanModifier := range mappingFans {
		if _, ok := writableFans[fanModifier.Fan]; !ok {
			return nil, fmt.Errorf("unknown fan '%s' in the mapping '%s'", fanModifier.Fan, name)
		}
		if !(0 < fanModifier.Modifier && fanModifier.Modifier <= 1.0) {
			return nil, fmt.Errorf(
				"invalid fan modifier '%v' in the mapping '%s' for the fan '%s': the allowed range is (0.0;1.0]",
				fanModifier.Modifier, name, fanModifier.Fan)
		}
		if seen[fanModifier.Fan] {
			return nil, fmt.Errorf("there are duplicate fans in the mapping '%s'", name)
		}
		seen[fanModifier.Fan] = true
	}

	return mappingFans, nil
}

// checkMappingCoverage ensures that every declared writable fan is driven by
// at least one mapping. Temps that no mapping references are allowed (they
// may be informational only) but are reported with a warning.
func checkMappingCoverage(
	mappings map[MappingName]FansTempsRelation,
	writableFans map[FanName]*fans.PWMFanNorm,
	compiledTemps map[TempName]FilteredTemp,
) error {
	unusedTemps := map[TempName]bool{}
	for tempName := range compiledTemps {
		unusedTemps[tempName] = true
	}
	unusedFans := map[FanName]bool{}
	for fanName := range writableFans {
		unusedFans[fanName] = true
	}

	for _, relation := range mappings {
		for _, tempName := range relation.Temps {
			delete(unusedTemps, tempName)
		}
		for _, fanModifier := range relation.Fans {
			delete(unusedFans, fanModifier.Fan)
		}
	}

	if len(unusedTemps) > 0 {
		var names []string
		for tempName := range unusedTemps {
			names = append(names, string(tempName))
		}
		sort.Strings(names)
		ui.Warning("The following temps are defined but not used in any mapping: %s", strings.Join(names, ", "))
	}

	if len(unusedFans) > 0 {
		var names []string
		for fanName := range unusedFans {
			names = append(names, string(fanName))
		}
		sort.Strings(names)
		return fmt.Errorf(
			"the following fans are defined but not used in any mapping: %s", strings.Join(names, ", "))
	}

	return nil
}
