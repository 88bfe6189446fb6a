package configuration

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/afancontrol/afancontrol/internal/arduino"
	"github.com/afancontrol/afancontrol/internal/fans"
)

const (
	FanTypeLinux    = "linux"
	FanTypeArduino  = "arduino"
	FanTypeFreeIPMI = "freeipmi"
)

func parseFans(
	sections []rawSection,
	arduinoConnections map[arduino.ArduinoName]*arduino.ArduinoConnection,
) (map[FanName]*fans.PWMFanNorm, error) {
	compiled := map[FanName]*fans.PWMFanNorm{}
	for _, raw := range sectionsOf(sections, "fan") {
		name := FanName(raw.instance)
		if _, ok := compiled[name]; ok {
			return nil, fmt.Errorf("duplicate fan section declaration for '%s'", name)
		}

		sec := raw.section()

		fanType := sec.getDefault("type", DefaultFanType)
		supportedTypes := []string{FanTypeLinux, FanTypeArduino}
		if !slices.Contains(supportedTypes, fanType) {
			return nil, fmt.Errorf(
				"unsupported fan type '%s' for the fan '%s', supported types: %s",
				fanType, name, strings.Join(supportedTypes, ", "))
		}

		var (
			fanSpeed fans.FanSpeed
			pwmRead  fans.FanPWMRead
			pwmWrite fans.FanPWMWrite
			err      error
		)
		if fanType == FanTypeLinux {
			fanSpeed, pwmRead, pwmWrite, err = buildLinuxFan(sec)
		} else {
			fanSpeed, pwmRead, pwmWrite, err = buildArduinoFan(sec, string(name), arduinoConnections)
		}
		if err != nil {
			return nil, err
		}

		neverStop, err := sec.getBool("never_stop", DefaultNeverStop)
		if err != nil {
			return nil, err
		}
		pwmLineStart, err := sec.getInt("pwm_line_start", DefaultPwmLineStart)
		if err != nil {
			return nil, err
		}
		pwmLineEnd, err := sec.getInt("pwm_line_end", DefaultPwmLineEnd)
		if err != nil {
			return nil, err
		}

		for _, pwmValue := range []int{pwmLineStart, pwmLineEnd} {
			if pwmValue < int(pwmRead.MinPWM()) || pwmValue > int(pwmRead.MaxPWM()) {
				return nil, fmt.Errorf(
					"incorrect PWM value '%d' for the fan '%s': it must be within [%d;%d]",
					pwmValue, name, pwmRead.MinPWM(), pwmRead.MaxPWM())
			}
		}
		if pwmLineStart >= pwmLineEnd {
			return nil, fmt.Errorf(
				"the pwm_line_start PWM value must be less than pwm_line_end for the fan '%s'", name)
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, err
		}

		compiled[name] = fans.NewPWMFanNorm(
			fanSpeed, pwmRead, pwmWrite,
			fans.PWMValue(pwmLineStart), fans.PWMValue(pwmLineEnd), neverStop)
	}

	return compiled, nil
}

func buildLinuxFan(sec *section) (fans.FanSpeed, fans.FanPWMRead, fans.FanPWMWrite, error) {
	pwmPath, err := sec.get("pwm")
	if err != nil {
		return nil, nil, nil, err
	}
	fanInput, err := sec.get("fan_input")
	if err != nil {
		return nil, nil, nil, err
	}
	return fans.NewLinuxFanSpeed(fanInput),
		fans.NewLinuxFanPWMRead(pwmPath),
		fans.NewLinuxFanPWMWrite(pwmPath),
		nil
}

func buildArduinoFan(
	sec *section,
	fanName string,
	arduinoConnections map[arduino.ArduinoName]*arduino.ArduinoConnection,
) (fans.FanSpeed, fans.FanPWMRead, fans.FanPWMWrite, error) {
	conn, err := resolveArduinoConnection(sec, fanName, arduinoConnections)
	if err != nil {
		return nil, nil, nil, err
	}
	pwmPin, err := sec.getRequiredInt("pwm_pin")
	if err != nil {
		return nil, nil, nil, err
	}
	tachoPin, err := sec.getRequiredInt("tacho_pin")
	if err != nil {
		return nil, nil, nil, err
	}
	return fans.NewArduinoFanSpeed(conn, tachoPin),
		fans.NewArduinoFanPWMRead(conn, pwmPin),
		fans.NewArduinoFanPWMWrite(conn, pwmPin),
		nil
}

func resolveArduinoConnection(
	sec *section,
	fanName string,
	arduinoConnections map[arduino.ArduinoName]*arduino.ArduinoConnection,
) (*arduino.ArduinoConnection, error) {
	arduinoName, err := sec.get("arduino_name")
	if err != nil {
		return nil, err
	}
	conn, ok := arduinoConnections[arduino.ArduinoName(strings.TrimSpace(arduinoName))]
	if !ok {
		return nil, fmt.Errorf("unknown arduino connection '%s' for the fan '%s'", arduinoName, fanName)
	}
	return conn, nil
}
