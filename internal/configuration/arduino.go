package configuration

import (
	"fmt"
	"time"

	"github.com/afancontrol/afancontrol/internal/arduino"
)

func parseArduinoConnections(sections []rawSection) (map[arduino.ArduinoName]*arduino.ArduinoConnection, error) {
	connections := map[arduino.ArduinoName]*arduino.ArduinoConnection{}
	for _, raw := range sectionsOf(sections, "arduino") {
		name := arduino.ArduinoName(raw.instance)
		if _, ok := connections[name]; ok {
			return nil, fmt.Errorf("duplicate arduino section declaration for '%s'", name)
		}

		sec := raw.section()

		serialURL, err := sec.get("serial_url")
		if err != nil {
			return nil, err
		}
		baudRate, err := sec.getInt("baudrate", arduino.DefaultBaudRate)
		if err != nil {
			return nil, err
		}
		statusTTL, err := sec.getInt("status_ttl", int(arduino.DefaultStatusTTL/time.Second))
		if err != nil {
			return nil, err
		}
		if statusTTL <= 0 {
			return nil, fmt.Errorf("the status_ttl of the arduino '%s' must be positive, got %d", name, statusTTL)
		}

		if err := sec.ensureNoUnusedKeys(); err != nil {
			return nil, err
		}

		connections[name] = arduino.NewConnection(
			name, serialURL, baudRate, time.Duration(statusTTL)*time.Second)
	}

	// an empty arduino category is fine
	return connections, nil
}
