package fans

import (
	"github.com/afancontrol/afancontrol/internal/util"
)

// LinuxFanSpeed reads the fan speed from a sysfs fan input file,
// e.g. /sys/class/hwmon/hwmon0/fan1_input.
type LinuxFanSpeed struct {
	FanInput string
}

func NewLinuxFanSpeed(fanInput string) *LinuxFanSpeed {
	return &LinuxFanSpeed{FanInput: fanInput}
}

func (f *LinuxFanSpeed) GetSpeed() (int, error) {
	return util.ReadIntFromFile(f.FanInput)
}

// LinuxFanPWMRead reads the PWM value from a sysfs pwm file,
// e.g. /sys/class/hwmon/hwmon0/pwm1.
type LinuxFanPWMRead struct {
	Pwm string
}

func NewLinuxFanPWMRead(pwm string) *LinuxFanPWMRead {
	return &LinuxFanPWMRead{Pwm: pwm}
}

func (f *LinuxFanPWMRead) GetPWM() (PWMValue, error) {
	value, err := util.ReadIntFromFile(f.Pwm)
	if err != nil {
		return 0, err
	}
	return PWMValue(value), nil
}

func (f *LinuxFanPWMRead) MinPWM() PWMValue {
	return MinPwmValue
}

func (f *LinuxFanPWMRead) MaxPWM() PWMValue {
	return MaxPwmValue
}

// LinuxFanPWMWrite writes the PWM value to a sysfs pwm file.
type LinuxFanPWMWrite struct {
	Pwm string
}

func NewLinuxFanPWMWrite(pwm string) *LinuxFanPWMWrite {
	return &LinuxFanPWMWrite{Pwm: pwm}
}

func (f *LinuxFanPWMWrite) SetPWM(pwm PWMValue) error {
	return util.WriteIntToFile(int(pwm), f.Pwm)
}
