package fans

// PWMValue is a pulse-width-modulation duty-cycle value within the
// device-specific [MinPWM, MaxPWM] range.
type PWMValue int

const (
	MinPwmValue PWMValue = 0
	MaxPwmValue PWMValue = 255
)

// FanSpeed reads the current rotation speed of a fan.
type FanSpeed interface {
	// GetSpeed returns the current RPM value of the fan
	GetSpeed() (int, error)
}

// FanPWMRead reads the current PWM value of a fan and exposes the PWM bounds
// of the underlying device.
type FanPWMRead interface {
	GetPWM() (PWMValue, error)
	MinPWM() PWMValue
	MaxPWM() PWMValue
}

// FanPWMWrite commands the PWM value of a fan.
type FanPWMWrite interface {
	SetPWM(pwm PWMValue) error
}
