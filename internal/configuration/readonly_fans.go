package configuration

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/afancontrol/afancontrol/internal/arduino"
	"github.com/afancontrol/afancontrol/internal/fans"
)

func parseReadonlyFans(
	sections []rawSection,
	arduinoConnections map[arduino.ArduinoName]*arduino.ArduinoConnection,
) (map[ReadonlyFanName]*fans.ReadonlyPWMFanNorm, error) {
	compiled := map[ReadonlyFanName]*fans.ReadonlyPWMFanNorm{}
	for _, raw := range sectionsOf(sections, "readonly_fan") {
		name := ReadonlyFanName(raw.instance)
		if _, ok := compiled[name]; ok {
			return nil, fmt.Errorf("duplicate readonly_fan section declaration for '%s'", name)
		}

		sec := raw.section()

		fanType := sec.getDefault("type", DefaultFanType)
		supportedTypes := []string{FanTypeLinux, FanTypeArduino, FanTypeFreeIPMI}
		if !slices.Contains(supportedTypes, fanType) {
			return nil, fmt.Errorf(
				"unsupported readonly fan type '%s' for the fan '%s', supported types: %s",
				fanType, name, strings.Join(supportedTypes, ", "))
		}

		var (
			fanSpeed fans.FanSpeed
			pwmRead  fans.FanPWMRead
		)
		switch fanType {
		case FanTypeLinux:
			fanInput, getErr := sec.get("fan_input")
			if getErr != nil {
				return nil, getErr
			}
			fanSpeed = fans.NewLinuxFanSpeed(fanInput)
			// PWM feedback is optional for observed fans
			if sec.has("pwm") {
				pwmPath, getErr := sec.get("pwm")
				if getErr != nil {
					return nil, getErr
				}
				pwmRead = fans.NewLinuxFanPWMRead(pwmPath)
			}
		case FanTypeArduino:
			conn, resolveErr := resolveArduinoConnection(sec, string(name), arduinoConnections)
			if resolveErr != nil {
				return nil, resolveErr
			}
			tachoPin, getErr := sec.getRequiredInt("tacho_pin")
			if getErr != nil {
				return nil, getErr
			}
			fanSpeed = fans.NewArduinoFanSpeed(conn, tachoPin)
			if sec.has("pwm_pin") {
				pwmPin, getErr := sec.getRequiredInt("pwm_pin")
				if getErr != nil {
					return nil, getErr
				}
				pwmRead = fans.NewArduinoFanPWMRead(conn, pwmPin)
			}
		case FanTypeFreeIPMI:
			// IPMI exposes no PWM feedback, so pwmRead is always nil here
			sensorName, getErr := sec.get("sensor_name")
			if getErr != nil {
				return nil, getErr
			}
			var extraArgs []string
			if args := sec.getOptional("ipmi_sensors_extra_args"); args != nil {
				extraArgs = strings.Fields(*args)
			}
			fanSpeed = fans.NewFreeIPMIFanSpeed(sensorName, extraArgs)
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, err
		}

		compiled[name] = fans.NewReadonlyPWMFanNorm(fanSpeed, pwmRead)
	}

	return compiled, nil
}

// checkFansNamespace enforces that fan and readonly_fan sections share one
// naming namespace.
func checkFansNamespace(
	writableFans map[FanName]*fans.PWMFanNorm,
	readonlyFans map[ReadonlyFanName]*fans.ReadonlyPWMFanNorm,
) error {
	var common []string
	for name := range writableFans {
		if _, ok := readonlyFans[ReadonlyFanName(name)]; ok {
			common = append(common, string(name))
		}
	}
	if len(common) > 0 {
		sort.Strings(common)
		return fmt.Errorf(
			"duplicate fan names have been found between the fan and readonly_fan sections: %s",
			strings.Join(common, ", "))
	}
	return nil
}
