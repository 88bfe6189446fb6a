package temps

import (
	"fmt"
	"strings"

	"github.com/afancontrol/afancontrol/internal/util"
)

// FileTemp reads a sysfs-style temperature file containing millidegrees
// Celsius, e.g. /sys/class/hwmon/hwmon0/temp1_input. When min or max are not
// configured they are read from the sibling temp*_min and temp*_max files.
type FileTemp struct {
	BaseTemp
	Path   string
	hasMin bool
	hasMax bool
}

func NewFileTemp(path string, min *float64, max *float64, panic *float64, threshold *float64) *FileTemp {
	t := &FileTemp{
		BaseTemp: BaseTemp{Panic: panic, Threshold: threshold},
		Path:     path,
	}
	if min != nil {
		t.Min = *min
		t.hasMin = true
	}
	if max != nil {
		t.Max = *max
		t.hasMax = true
	}
	return t
}

func (t *FileTemp) Get() (TempStatus, error) {
	value, err := readMillidegrees(t.Path)
	if err != nil {
		return TempStatus{}, err
	}

	min := t.Min
	if !t.hasMin {
		min, err = t.readSibling("_min")
		if err != nil {
			return TempStatus{}, err
		}
	}
	max := t.Max
	if !t.hasMax {
		max, err = t.readSibling("_max")
		if err != nil {
			return TempStatus{}, err
		}
	}

	return t.status(value, min, max), nil
}

func (t *FileTemp) readSibling(suffix string) (float64, error) {
	if !strings.HasSuffix(t.Path, "_input") {
		return 0, fmt.Errorf(
			"the temp file '%s' has no configured '%s' value and no sysfs sibling file to read it from",
			t.Path, strings.TrimPrefix(suffix, "_"))
	}
	sibling := strings.TrimSuffix(t.Path, "_input") + suffix
	value, err := readMillidegrees(sibling)
	if err != nil {
		return 0, fmt.Errorf("unable to read the '%s' value for the temp file '%s': %w",
			strings.TrimPrefix(suffix, "_"), t.Path, err)
	}
	return value, nil
}

func readMillidegrees(path string) (float64, error) {
	millidegrees, err := util.ReadIntFromFile(path)
	if err != nil {
		return 0, err
	}
	return float64(millidegrees) / 1000, nil
}
