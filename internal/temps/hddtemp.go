package temps

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/afancontrol/afancontrol/internal/util"
)

const hddtempTimeout = 10 * time.Second

// HDDTemp reads disk temperatures by invoking the hddtemp binary against a
// glob of block devices and reports the hottest disk.
type HDDTemp struct {
	BaseTemp
	HDDTempBin string
	DiskPath   string
}

func NewHDDTemp(hddtempBin string, diskPath string, min float64, max float64, panic *float64, threshold *float64) *HDDTemp {
	return &HDDTemp{
		BaseTemp:   BaseTemp{Min: min, Max: max, Panic: panic, Threshold: threshold},
		HDDTempBin: hddtempBin,
		DiskPath:   diskPath,
	}
}

func (t *HDDTemp) Get() (TempStatus, error) {
	disks, err := filepath.Glob(t.DiskPath)
	if err != nil {
		return TempStatus{}, fmt.Errorf("invalid disk path glob '%s': %w", t.DiskPath, err)
	}
	if len(disks) == 0 {
		return TempStatus{}, fmt.Errorf("no disks match '%s'", t.DiskPath)
	}

	out, err := t.exec(disks)
	if err != nil {
		return TempStatus{}, err
	}

	max := 0.0
	seen := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		value, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		if !seen || value > max {
			max = value
			seen = true
		}
	}
	if !seen {
		return TempStatus{}, fmt.Errorf("hddtemp reported no temperatures for '%s'", t.DiskPath)
	}

	return t.status(max, t.Min, t.Max), nil
}

func (t *HDDTemp) exec(disks []string) (string, error) {
	// the hddtemp setting may carry extra arguments after the binary name
	parts := strings.Fields(t.HDDTempBin)
	args := append(parts[1:], "-n", "-u", "C", "--")
	args = append(args, disks...)
	return util.SafeCmdExecution(parts[0], args, hddtempTimeout)
}
