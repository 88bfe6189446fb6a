package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/ini.v1"

	"github.com/afancontrol/afancontrol/internal/arduino"
	"github.com/afancontrol/afancontrol/internal/fans"
	"github.com/afancontrol/afancontrol/internal/filters"
	"github.com/afancontrol/afancontrol/internal/temps"
)

const (
	DefaultConfigFile = "afancontrol.conf"
	DefaultConfigDir  = "/etc/afancontrol"

	DefaultPidFile  = "/run/afancontrol.pid"
	DefaultInterval = 5
	DefaultHDDTemp  = "hddtemp"

	DefaultReportCmd = `printf "Subject: %s\nTo: %s\n\n%b"` +
		` "afancontrol daemon report: %REASON%" root "%MESSAGE%"` +
		` | sendmail -t`

	DefaultFanType      = "linux"
	DefaultPwmLineStart = 100
	DefaultPwmLineEnd   = 240
	DefaultNeverStop    = true

	DefaultWindowSize = 3
)

// FilteredTemp is a temperature source paired with its smoothing filter.
// The filter instance is owned exclusively by this temp.
type FilteredTemp struct {
	Temp   temps.Temp
	Filter filters.TempFilter
}

// ParsedConfig is the root of the validated configuration model. It is built
// in a single parse pass, is immutable afterwards, and is the sole artifact
// handed to the control loop.
type ParsedConfig struct {
	Daemon             DaemonConfig
	ReportCmd          string
	Triggers           TriggerConfig
	ArduinoConnections map[arduino.ArduinoName]*arduino.ArduinoConnection
	Fans               map[FanName]*fans.PWMFanNorm
	ReadonlyFans       map[ReadonlyFanName]*fans.ReadonlyPWMFanNorm
	Temps              map[TempName]FilteredTemp
	Mappings           map[MappingName]FansTempsRelation
}

// Parse reads and validates the whole configuration file. The first
// validation failure aborts the parse; a non-nil ParsedConfig is always
// fully validated.
func Parse(configPath string, cli DaemonCLIConfig) (*ParsedConfig, error) {
	return parseSource(configPath, configPath, cli)
}

func parseSource(source interface{}, path string, cli DaemonCLIConfig) (*ParsedConfig, error) {
	file, err := ini.LoadSources(ini.LoadOptions{AllowNonUniqueSections: true}, source)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	sections := routeSections(file)

	daemon, hddtemp, err := parseDaemon(sections, cli)
	if err != nil {
		return nil, err
	}
	reportCmd, globalCommands, err := parseActions(sections)
	if err != nil {
		return nil, err
	}
	arduinoConnections, err := parseArduinoConnections(sections)
	if err != nil {
		return nil, err
	}
	tempFilters, err := parseFilters(sections)
	if err != nil {
		return nil, err
	}
	parsedTemps, tempCommands, err := parseTemps(sections, hddtemp, tempFilters)
	if err != nil {
		return nil, err
	}
	parsedFans, err := parseFans(sections, arduinoConnections)
	if err != nil {
		return nil, err
	}
	readonlyFans, err := parseReadonlyFans(sections, arduinoConnections)
	if err != nil {
		return nil, err
	}
	if err := checkFansNamespace(parsedFans, readonlyFans); err != nil {
		return nil, err
	}
	mappings, err := parseMappings(sections, parsedFans, parsedTemps)
	if err != nil {
		return nil, err
	}

	return &ParsedConfig{
		Daemon:    daemon,
		ReportCmd: reportCmd,
		Triggers: TriggerConfig{
			GlobalCommands: globalCommands,
			TempCommands:   tempCommands,
		},
		ArduinoConnections: arduinoConnections,
		Fans:               parsedFans,
		ReadonlyFans:       readonlyFans,
		Temps:              parsedTemps,
		Mappings:           mappings,
	}, nil
}

// rawSection is a routed configuration section: the category is lowercased
// and trimmed, the instance name is trimmed.
type rawSection struct {
	category string
	instance string
	ini      *ini.Section
}

// section wraps the raw ini section into a tracked-read view named after the
// full section header.
func (r rawSection) section() *section {
	name := r.category
	if r.instance != "" {
		name = r.category + ":" + r.instance
	}
	return newSection(name, r.ini)
}

func routeSections(file *ini.File) []rawSection {
	var out []rawSection
	seen := map[string]bool{}
	for _, name := range file.SectionStrings() {
		if name == ini.DefaultSection || seen[name] {
			continue
		}
		seen[name] = true
		instances, err := file.SectionsByName(name)
		if err != nil {
			continue
		}
		category, instance := splitSectionName(name)
		for _, iniSection := range instances {
			out = append(out, rawSection{category: category, instance: instance, ini: iniSection})
		}
	}
	return out
}

func splitSectionName(name string) (category string, instance string) {
	parts := strings.SplitN(name, ":", 2)
	category = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		instance = strings.TrimSpace(parts[1])
	}
	return category, instance
}

func sectionsOf(sections []rawSection, category string) []rawSection {
	var out []rawSection
	for _, s := range sections {
		if s.category == category {
			out = append(out, s)
		}
	}
	return out
}

// DetectConfigFile resolves the configuration file path: an explicitly given
// path wins, otherwise the working directory, the home directory and
// /etc/afancontrol are searched.
func DetectConfigFile(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	searchDirs := []string{"."}
	if home, err := homedir.Dir(); err == nil {
		searchDirs = append(searchDirs, home)
	}
	searchDirs = append(searchDirs, DefaultConfigDir)

	for _, dir := range searchDirs {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(DefaultConfigDir, DefaultConfigFile)
}
