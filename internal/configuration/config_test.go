package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const minimalConfig = `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1*0.5
`

func TestParseMinimalConfig(t *testing.T) {
	// WHEN
	cfg, err := parseSource([]byte(minimalConfig), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, DefaultReportCmd, cfg.ReportCmd)

	assert.Len(t, cfg.Fans, 1)
	fan := cfg.Fans[FanName("f1")]
	assert.Equal(t, 100, int(fan.PwmLineStart))
	assert.Equal(t, 240, int(fan.PwmLineEnd))
	assert.True(t, fan.NeverStop)

	assert.Len(t, cfg.Temps, 1)
	assert.Contains(t, cfg.Temps, TempName("t1"))

	assert.Equal(t,
		[]FanSpeedModifier{{Fan: FanName("f1"), Modifier: 0.5}},
		cfg.Mappings[MappingName("m1")].Fans)
	assert.Equal(t, []TempName{"t1"}, cfg.Mappings[MappingName("m1")].Temps)
}

func TestParseIsDeterministic(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[filter:smooth]
type = moving_median
window_size = 5

[temp:t2]
type = file
path = /fake/hwmon0/temp2_input
filter = smooth

[mapping:m2]
temps = t2
fans = f1
`

	// WHEN the same text is parsed twice
	first, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})
	assert.NoError(t, err)
	second, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})
	assert.NoError(t, err)

	// THEN both results are structurally equal
	assert.Equal(t, first, second)
}

func TestParseMalformedSource(t *testing.T) {
	// GIVEN
	config := "[fan:f1\npwm = x\n"

	// WHEN
	_, err := parseSource([]byte(config), "bad.conf", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad.conf")
}

func TestModifierUpperBoundIsValid(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1*1.0
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Mappings[MappingName("m1")].Fans[0].Modifier)
}

func TestModifierOutOfRange(t *testing.T) {
	for _, modifier := range []string{"1.5", "0.0", "-0.2"} {
		config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1*` + modifier + "\n"

		_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

		assert.Error(t, err, "modifier %s must be rejected", modifier)
		assert.Contains(t, err.Error(), "(0.0;1.0]")
	}
}

func TestMalformedFanSpecification(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[mapping:m2]
temps = t1
fans = f1*0.5*2
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fan specification")
}

func TestNonNumericFanModifier(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[mapping:m2]
temps = t1
fans = f1*half
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fan modifier")
}

func TestUnusedFanFails(t *testing.T) {
	// GIVEN a second fan no mapping references
	config := minimalConfig + `
[fan:f2]
pwm = /fake/hwmon0/pwm2
fan_input = /fake/hwmon0/fan2_input
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not used in any mapping")
	assert.Contains(t, err.Error(), "f2")
}

func TestUnusedTempIsAllowed(t *testing.T) {
	// GIVEN a second temp no mapping references
	config := minimalConfig + `
[temp:t2]
type = file
path = /fake/hwmon0/temp2_input
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN the parse succeeds and the temp is kept
	assert.NoError(t, err)
	assert.Contains(t, cfg.Temps, TempName("t2"))
}

func TestEmptyTempsInMapping(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = , ,
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestUnknownTempInMapping(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[mapping:m2]
temps = t9
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown temp 't9'")
}

func TestUnknownFanInMapping(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[mapping:m2]
temps = t1
fans = f9
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fan 'f9'")
}

func TestDuplicateTempsInMapping(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1, t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate temps")
}

func TestDuplicateFansInMapping(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1, f1*0.3
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate fans")
}

func TestDuplicateMappingSections(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate mapping section")
}

func TestDuplicateFanSections(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[fan:f1]
pwm = /fake/hwmon0/pwm8
fan_input = /fake/hwmon0/fan8_input
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate fan section")
}

func TestFanNamespaceCollision(t *testing.T) {
	// GIVEN a readonly fan reusing a writable fan name
	config := minimalConfig + `
[readonly_fan:f1]
fan_input = /fake/hwmon0/fan3_input
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "f1")
	assert.Contains(t, err.Error(), "readonly_fan")
}

func TestPwmLineStartMustBeLessThanEnd(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input
pwm_line_start = 240
pwm_line_end = 100

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pwm_line_start")
}

func TestPwmLineOutsideDeviceBounds(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input
pwm_line_end = 300

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "[0;255]")
}

func TestUnsupportedTypes(t *testing.T) {
	cases := map[string]string{
		"filter": "[filter:x]\ntype = averaging\n" + minimalConfig,
		"temp":   "[temp:x]\ntype = i2c\npath = /x\n" + minimalConfig,
		"fan": `
[fan:x]
type = acpi
pwm = /x
fan_input = /x
` + minimalConfig,
		"readonly_fan": `
[readonly_fan:x]
type = acpi
fan_input = /x
` + minimalConfig,
	}

	for category, config := range cases {
		_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

		assert.Error(t, err, "category %s must reject unsupported types", category)
		assert.Contains(t, err.Error(), "unsupported")
		assert.Contains(t, err.Error(), "supported types")
	}
}

func TestUnknownKeysAreRejectedEverywhere(t *testing.T) {
	cases := []string{
		"[filter:x]\ntype = moving_median\nwindowsize = 5\n" + minimalConfig,
		"[temp:x]\ntype = file\npath = /x\npaths = /y\n" + minimalConfig,
		"[readonly_fan:x]\nfan_input = /x\nnever_stop = yes\n" + minimalConfig,
		"[arduino:a]\nserial_url = /dev/ttyACM0\nbaud = 9600\n" + minimalConfig,
	}

	for _, config := range cases {
		_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys")
	}
}

func TestUnknownFilterReference(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input
filter = nope

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter 'nope'")
}

func TestFilterInstancesAreIndependentCopies(t *testing.T) {
	// GIVEN one filter declaration shared by two temps
	config := `
[filter:avg]
type = moving_median
window_size = 5

[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input
filter = avg

[temp:t2]
type = file
path = /fake/hwmon0/temp2_input
filter = avg

[mapping:m1]
temps = t1, t2
fans = f1
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})
	assert.NoError(t, err)

	t1Filter := cfg.Temps[TempName("t1")].Filter
	t2Filter := cfg.Temps[TempName("t2")].Filter

	// THEN each temp holds its own instance with independent window state
	assert.NotSame(t, t1Filter, t2Filter)

	t1Filter.Apply(90)
	t1Filter.Apply(90)
	t1Filter.Apply(90)
	assert.Equal(t, 10.0, t2Filter.Apply(10))
}

func TestArduinoBackedFan(t *testing.T) {
	// GIVEN
	config := `
[arduino:mhz]
serial_url = /dev/ttyACM0

[fan:f1]
type = arduino
arduino_name = mhz
pwm_pin = 9
tacho_pin = 3

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.Len(t, cfg.ArduinoConnections, 1)
	assert.Contains(t, cfg.Fans, FanName("f1"))
}

func TestUnknownArduinoReference(t *testing.T) {
	// GIVEN
	config := `
[fan:f1]
type = arduino
arduino_name = nope
pwm_pin = 9
tacho_pin = 3

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	_, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown arduino connection 'nope'")
}

func TestReadonlyFanPwmCapability(t *testing.T) {
	// GIVEN
	config := minimalConfig + `
[readonly_fan:observed]
fan_input = /fake/hwmon0/fan5_input
pwm = /fake/hwmon0/pwm5

[readonly_fan:speed_only]
fan_input = /fake/hwmon0/fan6_input

[readonly_fan:bmc]
type = freeipmi
sensor_name = FAN1
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.NotNil(t, cfg.ReadonlyFans[ReadonlyFanName("observed")].PWMRead)
	assert.Nil(t, cfg.ReadonlyFans[ReadonlyFanName("speed_only")].PWMRead)
	assert.Nil(t, cfg.ReadonlyFans[ReadonlyFanName("bmc")].PWMRead)
}

func TestPerTempAlertCommands(t *testing.T) {
	// GIVEN
	config := `
[actions]
report_cmd = true
panic_enter_cmd = echo global panic

[fan:f1]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[temp:t1]
type = file
path = /fake/hwmon0/temp1_input
panic = 60
panic_enter_cmd = echo t1 panic
threshold_leave_cmd = echo t1 cooled

[mapping:m1]
temps = t1
fans = f1
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "true", cfg.ReportCmd)
	assert.Equal(t, stringPtr("echo global panic"), cfg.Triggers.GlobalCommands.Panic.EnterCmd)

	tempActions := cfg.Triggers.TempCommands[TempName("t1")]
	assert.Equal(t, stringPtr("echo t1 panic"), tempActions.Panic.EnterCmd)
	assert.Equal(t, stringPtr("echo t1 cooled"), tempActions.Threshold.LeaveCmd)
	assert.Nil(t, tempActions.Panic.LeaveCmd)
}

func TestSectionNamesAreNormalized(t *testing.T) {
	// GIVEN mixed-case categories and padded instance names
	config := `
[FAN: f1 ]
pwm = /fake/hwmon0/pwm1
fan_input = /fake/hwmon0/fan1_input

[Temp:t1]
type = file
path = /fake/hwmon0/temp1_input

[MAPPING:m1]
temps = t1
fans = f1
`

	// WHEN
	cfg, err := parseSource([]byte(config), "<test>", DaemonCLIConfig{})

	// THEN
	assert.NoError(t, err)
	assert.Contains(t, cfg.Fans, FanName("f1"))
	assert.Contains(t, cfg.Temps, TempName("t1"))
	assert.Contains(t, cfg.Mappings, MappingName("m1"))
}
