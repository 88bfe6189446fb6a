package configuration

import (
	"fmt"
	"strings"
	"time"
)

// DaemonCLIConfig carries the daemon values that can be supplied on the
// command line. A nil field means "not set".
type DaemonCLIConfig struct {
	PidFile            *string
	LogFile            *string
	ExporterListenHost *string
}

// DaemonConfig is the resolved daemon configuration. A nil PidFile means
// that pidfile handling is disabled.
type DaemonConfig struct {
	PidFile            *string
	LogFile            *string
	Interval           time.Duration
	ExporterListenHost *string
}

// FirstNotNil returns the first non-nil value, making the
// CLI > config file > built-in default precedence chain explicit.
func FirstNotNil[T any](values ...*T) *T {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func stringPtr(s string) *string {
	return &s
}

func parseDaemon(sections []rawSection, cli DaemonCLIConfig) (DaemonConfig, string, error) {
	daemonSections := sectionsOf(sections, "daemon")
	if len(daemonSections) > 1 {
		return DaemonConfig{}, "", fmt.Errorf("duplicate daemon section declaration")
	}

	sec := emptySection("daemon")
	if len(daemonSections) == 1 {
		if daemonSections[0].instance != "" {
			return DaemonConfig{}, "", fmt.Errorf(
				"the daemon section must not have an instance name, got 'daemon:%s'", daemonSections[0].instance)
		}
		sec = daemonSections[0].section()
	}

	pidfile := FirstNotNil(cli.PidFile, sec.getOptional("pidfile"), stringPtr(DefaultPidFile))
	if pidfile != nil && strings.TrimSpace(*pidfile) == "" {
		pidfile = nil
	}

	logfile := FirstNotNil(cli.LogFile, sec.getOptional("logfile"))

	interval, err := sec.getInt("interval", DefaultInterval)
	if err != nil {
		return DaemonConfig{}, "", err
	}
	if interval <= 0 {
		return DaemonConfig{}, "", fmt.Errorf("the daemon interval must be positive, got %d", interval)
	}

	exporterListenHost := FirstNotNil(cli.ExporterListenHost, sec.getOptional("exporter_listen_host"))

	hddtemp := sec.getDefault("hddtemp", DefaultHDDTemp)

	if err := sec.ensureNoUnusedKeys(); err != nil {
		return DaemonConfig{}, "", err
	}

	return DaemonConfig{
		PidFile:            pidfile,
		LogFile:            logfile,
		Interval:           time.Duration(interval) * time.Second,
		ExporterListenHost: exporterListenHost,
	}, hddtemp, nil
}

func emptySection(name string) *section {
	return &section{
		name:   name,
		values: map[string]string{},
		used:   map[string]bool{},
	}
}
