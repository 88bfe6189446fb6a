package fans

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/afancontrol/afancontrol/internal/util"
)

const ipmiSensorsTimeout = 10 * time.Second

// FreeIPMIFanSpeed reads the fan speed from the BMC via the freeipmi
// ipmi-sensors tool. IPMI exposes no PWM feedback, so this backend is
// observation-only.
type FreeIPMIFanSpeed struct {
	SensorName string
	ExtraArgs  []string
}

func NewFreeIPMIFanSpeed(sensorName string, extraArgs []string) *FreeIPMIFanSpeed {
	return &FreeIPMIFanSpeed{SensorName: sensorName, ExtraArgs: extraArgs}
}

func (f *FreeIPMIFanSpeed) GetSpeed() (int, error) {
	args := append([]string{
		"--comma-separated-output",
		"--no-header-output",
		"--sensor-types=Fan",
	}, f.ExtraArgs...)

	out, err := util.SafeCmdExecution("ipmi-sensors", args, ipmiSensorsTimeout)
	if err != nil {
		return 0, err
	}

	return parseIPMISensors(out, f.SensorName)
}

// parseIPMISensors extracts the reading of the named fan sensor from
// comma-separated ipmi-sensors output: id,name,type,reading,units,event.
func parseIPMISensors(out string, sensorName string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			continue
		}
		if strings.TrimSpace(fields[1]) != sensorName {
			continue
		}
		reading := strings.TrimSpace(fields[3])
		if reading == "N/A" {
			return 0, fmt.Errorf("ipmi sensor '%s' has no reading", sensorName)
		}
		rpm, err := strconv.ParseFloat(reading, 64)
		if err != nil {
			return 0, fmt.Errorf("ipmi sensor '%s' reading '%s' is not a number", sensorName, reading)
		}
		return int(rpm), nil
	}
	return 0, fmt.Errorf("ipmi sensor '%s' was not found in the ipmi-sensors output", sensorName)
}
