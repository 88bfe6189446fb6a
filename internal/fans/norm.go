package fans

import (
	"math"

	"github.com/afancontrol/afancontrol/internal/util"
)

// PWMFanNorm is a controllable fan addressed with normalized speeds in the
// [0.0, 1.0] range. The normalized value is mapped into the configured
// [PwmLineStart, PwmLineEnd] line within the device PWM bounds.
type PWMFanNorm struct {
	Speed    FanSpeed
	PWMRead  FanPWMRead
	PWMWrite FanPWMWrite

	PwmLineStart PWMValue
	PwmLineEnd   PWMValue
	NeverStop    bool
}

func NewPWMFanNorm(
	speed FanSpeed,
	pwmRead FanPWMRead,
	pwmWrite FanPWMWrite,
	pwmLineStart PWMValue,
	pwmLineEnd PWMValue,
	neverStop bool,
) *PWMFanNorm {
	return &PWMFanNorm{
		Speed:        speed,
		PWMRead:      pwmRead,
		PWMWrite:     pwmWrite,
		PwmLineStart: pwmLineStart,
		PwmLineEnd:   pwmLineEnd,
		NeverStop:    neverStop,
	}
}

// Set commands the fan with a normalized speed and returns the PWM value
// that was written.
func (f *PWMFanNorm) Set(norm float64) (PWMValue, error) {
	norm = util.Clamp(norm, 0.0, 1.0)

	pwm := norm * float64(f.PwmLineEnd)
	if 0 < pwm && pwm < float64(f.PwmLineStart) {
		pwm = float64(f.PwmLineStart)
	}
	if norm == 0.0 && f.NeverStop {
		pwm = float64(f.PwmLineStart)
	}

	value := PWMValue(int(math.Ceil(pwm)))
	if err := f.PWMWrite.SetPWM(value); err != nil {
		return 0, err
	}
	return value, nil
}

// GetNorm returns the current PWM value scaled to [0.0, 1.0] over the
// device bounds.
func (f *PWMFanNorm) GetNorm() (float64, error) {
	pwm, err := f.PWMRead.GetPWM()
	if err != nil {
		return 0, err
	}
	return float64(pwm) / float64(f.PWMRead.MaxPWM()), nil
}

func (f *PWMFanNorm) GetSpeed() (int, error) {
	return f.Speed.GetSpeed()
}

// ReadonlyPWMFanNorm is a fan that is tracked for observation only and never
// commanded. PWMRead is nil when the backend exposes no PWM feedback.
type ReadonlyPWMFanNorm struct {
	Speed   FanSpeed
	PWMRead FanPWMRead
}

func NewReadonlyPWMFanNorm(speed FanSpeed, pwmRead FanPWMRead) *ReadonlyPWMFanNorm {
	return &ReadonlyPWMFanNorm{Speed: speed, PWMRead: pwmRead}
}

func (f *ReadonlyPWMFanNorm) GetSpeed() (int, error) {
	return f.Speed.GetSpeed()
}

func (f *ReadonlyPWMFanNorm) GetNorm() (float64, error) {
	if f.PWMRead == nil {
		return 0, nil
	}
	pwm, err := f.PWMRead.GetPWM()
	if err != nil {
		return 0, err
	}
	return float64(pwm) / float64(f.PWMRead.MaxPWM()), nil
}
