package fans

import (
	"github.com/afancontrol/afancontrol/internal/arduino"
)

// ArduinoFanSpeed reads the fan speed from a tachometer pin of an arduino board.
type ArduinoFanSpeed struct {
	Conn     *arduino.ArduinoConnection
	TachoPin int
}

func NewArduinoFanSpeed(conn *arduino.ArduinoConnection, tachoPin int) *ArduinoFanSpeed {
	return &ArduinoFanSpeed{Conn: conn, TachoPin: tachoPin}
}

func (f *ArduinoFanSpeed) GetSpeed() (int, error) {
	return f.Conn.GetRPM(f.TachoPin)
}

// ArduinoFanPWMRead reads the PWM value of a PWM pin of an arduino board.
type ArduinoFanPWMRead struct {
	Conn   *arduino.ArduinoConnection
	PwmPin int
}

func NewArduinoFanPWMRead(conn *arduino.ArduinoConnection, pwmPin int) *ArduinoFanPWMRead {
	return &ArduinoFanPWMRead{Conn: conn, PwmPin: pwmPin}
}

func (f *ArduinoFanPWMRead) GetPWM() (PWMValue, error) {
	value, err := f.Conn.GetPWM(f.PwmPin)
	if err != nil {
		return 0, err
	}
	return PWMValue(value), nil
}

func (f *ArduinoFanPWMRead) MinPWM() PWMValue {
	return MinPwmValue
}

func (f *ArduinoFanPWMRead) MaxPWM() PWMValue {
	return MaxPwmValue
}

// ArduinoFanPWMWrite commands a PWM pin of an arduino board.
type ArduinoFanPWMWrite struct {
	Conn   *arduino.ArduinoConnection
	PwmPin int
}

func NewArduinoFanPWMWrite(conn *arduino.ArduinoConnection, pwmPin int) *ArduinoFanPWMWrite {
	return &ArduinoFanPWMWrite{Conn: conn, PwmPin: pwmPin}
}

func (f *ArduinoFanPWMWrite) SetPWM(pwm PWMValue) error {
	f.Conn.SetPWM(f.PwmPin, int(pwm))
	return nil
}
