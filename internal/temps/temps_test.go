package temps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestFileTemp(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	err := os.WriteFile(path, []byte("42000\n"), 0o644)
	assert.NoError(t, err)

	temp := NewFileTemp(path, float64Ptr(30), float64Ptr(50), float64Ptr(60), float64Ptr(45))

	// WHEN
	status, err := temp.Get()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.0, status.Value)
	assert.Equal(t, 30.0, status.Min)
	assert.Equal(t, 50.0, status.Max)
	assert.False(t, status.IsPanic)
	assert.False(t, status.IsThreshold)
}

func TestFileTempSysfsSiblingBounds(t *testing.T) {
	// GIVEN a sysfs-style directory with temp1_input/temp1_min/temp1_max
	dir := t.TempDir()
	input := filepath.Join(dir, "temp1_input")
	assert.NoError(t, os.WriteFile(input, []byte("42000"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "temp1_min"), []byte("30000"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "temp1_max"), []byte("50000"), 0o644))

	temp := NewFileTemp(input, nil, nil, nil, nil)

	// WHEN
	status, err := temp.Get()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.0, status.Value)
	assert.Equal(t, 30.0, status.Min)
	assert.Equal(t, 50.0, status.Max)
}

func TestFileTempMissingBounds(t *testing.T) {
	// GIVEN a temp file with no configured bounds and no sysfs siblings
	path := filepath.Join(t.TempDir(), "cpu_temp")
	assert.NoError(t, os.WriteFile(path, []byte("42000"), 0o644))

	temp := NewFileTemp(path, nil, nil, nil, nil)

	// WHEN
	_, err := temp.Get()

	// THEN
	assert.Error(t, err)
}

func TestFileTempThresholds(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "temp1_input")
	err := os.WriteFile(path, []byte("61000"), 0o644)
	assert.NoError(t, err)

	temp := NewFileTemp(path, float64Ptr(30), float64Ptr(50), float64Ptr(60), float64Ptr(45))

	// WHEN
	status, err := temp.Get()

	// THEN
	assert.NoError(t, err)
	assert.True(t, status.IsPanic)
	assert.True(t, status.IsThreshold)
}

func TestFileTempMissingFile(t *testing.T) {
	// GIVEN
	temp := NewFileTemp(filepath.Join(t.TempDir(), "nope"), float64Ptr(30), float64Ptr(50), nil, nil)

	// WHEN
	_, err := temp.Get()

	// THEN
	assert.Error(t, err)
}

func TestCommandTemp(t *testing.T) {
	// GIVEN
	temp := NewCommandTemp("printf '42\n30\n60'", nil, nil, nil, nil)

	// WHEN
	status, err := temp.Get()

	// THEN the command output overrides the unset min/max
	assert.NoError(t, err)
	assert.Equal(t, 42.0, status.Value)
	assert.Equal(t, 30.0, status.Min)
	assert.Equal(t, 60.0, status.Max)
}

func TestCommandTempConfiguredBounds(t *testing.T) {
	// GIVEN
	temp := NewCommandTemp("echo 42", float64Ptr(35), float64Ptr(55), nil, nil)

	// WHEN
	status, err := temp.Get()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.0, status.Value)
	assert.Equal(t, 35.0, status.Min)
	assert.Equal(t, 55.0, status.Max)
}

func TestCommandTempMissingBounds(t *testing.T) {
	// GIVEN a command that prints only the value, with no configured bounds
	temp := NewCommandTemp("echo 42", nil, nil, nil, nil)

	// WHEN
	_, err := temp.Get()

	// THEN
	assert.Error(t, err)
}

func TestCommandTempNonNumericOutput(t *testing.T) {
	// GIVEN
	temp := NewCommandTemp("echo not-a-number", float64Ptr(35), float64Ptr(55), nil, nil)

	// WHEN
	_, err := temp.Get()

	// THEN
	assert.Error(t, err)
}
