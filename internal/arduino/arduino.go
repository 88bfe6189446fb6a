package arduino

import (
	"fmt"
	"sync"
	"time"
)

type ArduinoName string

const (
	DefaultBaudRate  = 115200
	DefaultStatusTTL = 5 * time.Second
)

// ArduinoConnection describes a serial link to an arduino board that exposes
// PWM and tachometer pins. The serial driver feeding it is external; the
// connection itself only keeps the dial parameters, the last received pin
// status and the PWM values that should be written out on the next flush.
type ArduinoConnection struct {
	Name      ArduinoName
	SerialURL string
	BaudRate  int
	StatusTTL time.Duration

	mu           sync.RWMutex
	pwmByPin     map[int]int
	rpmByPin     map[int]int
	wantedPwm    map[int]int
	lastStatusAt time.Time
}

func NewConnection(name ArduinoName, serialURL string, baudRate int, statusTTL time.Duration) *ArduinoConnection {
	return &ArduinoConnection{
		Name:      name,
		SerialURL: serialURL,
		BaudRate:  baudRate,
		StatusTTL: statusTTL,
		pwmByPin:  map[int]int{},
		rpmByPin:  map[int]int{},
		wantedPwm: map[int]int{},
	}
}

// UpdateStatus stores a status frame received from the board.
func (c *ArduinoConnection) UpdateStatus(pwmByPin map[int]int, rpmByPin map[int]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for pin, pwm := range pwmByPin {
		c.pwmByPin[pin] = pwm
	}
	for pin, rpm := range rpmByPin {
		c.rpmByPin[pin] = rpm
	}
	c.lastStatusAt = time.Now()
}

func (c *ArduinoConnection) GetRPM(tachoPin int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.ensureFresh(); err != nil {
		return 0, err
	}
	rpm, ok := c.rpmByPin[tachoPin]
	if !ok {
		return 0, fmt.Errorf("arduino '%s' did not report a speed for the tacho pin %d", c.Name, tachoPin)
	}
	return rpm, nil
}

func (c *ArduinoConnection) GetPWM(pwmPin int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.ensureFresh(); err != nil {
		return 0, err
	}
	pwm, ok := c.pwmByPin[pwmPin]
	if !ok {
		return 0, fmt.Errorf("arduino '%s' did not report a PWM value for the pin %d", c.Name, pwmPin)
	}
	return pwm, nil
}

// SetPWM records the desired PWM value for a pin. The serial driver picks it
// up via WantedPWM on its next write cycle.
func (c *ArduinoConnection) SetPWM(pwmPin int, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wantedPwm[pwmPin] = value
}

// WantedPWM returns a snapshot of the PWM values waiting to be flushed.
func (c *ArduinoConnection) WantedPWM() map[int]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int]int, len(c.wantedPwm))
	for pin, pwm := range c.wantedPwm {
		out[pin] = pwm
	}
	return out
}

func (c *ArduinoConnection) ensureFresh() error {
	if c.lastStatusAt.IsZero() {
		return fmt.Errorf("no status from the arduino '%s' has been received yet", c.Name)
	}
	if age := time.Since(c.lastStatusAt); age > c.StatusTTL {
		return fmt.Errorf("the last status from the arduino '%s' is too old: %s", c.Name, age)
	}
	return nil
}
