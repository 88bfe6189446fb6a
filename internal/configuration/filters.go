package configuration

import (
	"fmt"

	"github.com/afancontrol/afancontrol/internal/filters"
)

const (
	FilterTypeMovingMedian   = "moving_median"
	FilterTypeMovingQuantile = "moving_quantile"
)

// parseFilters compiles the filter declarations. The returned filters are
// templates: each temp referencing one receives its own copy.
func parseFilters(sections []rawSection) (map[FilterName]filters.TempFilter, error) {
	compiled := map[FilterName]filters.TempFilter{}
	for _, raw := range sectionsOf(sections, "filter") {
		name := FilterName(raw.instance)
		if _, ok := compiled[name]; ok {
			return nil, fmt.Errorf("duplicate filter section declaration for '%s'", name)
		}

		sec := raw.section()

		filterType, err := sec.get("type")
		if err != nil {
			return nil, err
		}

		var f filters.TempFilter
		switch filterType {
		case FilterTypeMovingMedian:
			windowSize, err := sec.getInt("window_size", DefaultWindowSize)
			if err != nil {
				return nil, err
			}
			if windowSize < 1 {
				return nil, fmt.Errorf("the window_size of the filter '%s' must be positive, got %d", name, windowSize)
			}
			f = filters.NewMovingMedianFilter(windowSize)
		case FilterTypeMovingQuantile:
			windowSize, err := sec.getInt("window_size", DefaultWindowSize)
			if err != nil {
				return nil, err
			}
			if windowSize < 1 {
				return nil, fmt.Errorf("the window_size of the filter '%s' must be positive, got %d", name, windowSize)
			}
			quantile, err := sec.getRequiredFloat("quantile")
			if err != nil {
				return nil, err
			}
			if quantile <= 0 || quantile >= 1 {
				return nil, fmt.Errorf(
					"invalid quantile '%v' for the filter '%s': the allowed range is (0.0;1.0)", quantile, name)
			}
			f = filters.NewMovingQuantileFilter(quantile, windowSize)
		default:
			return nil, fmt.Errorf(
				"unsupported filter type '%s' for the filter '%s', supported types: %s, %s",
				filterType, name, FilterTypeMovingMedian, FilterTypeMovingQuantile)
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, err
		}

		compiled[name] = f
	}

	// an empty filter category is fine
	return compiled, nil
}
