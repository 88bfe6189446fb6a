package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	// GIVEN
	expected := 0.5

	// WHEN
	result := Ratio(50, 0, 100)

	// THEN
	assert.Equal(t, expected, result)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.3, 0, 1))
	assert.Equal(t, 1.0, Clamp(2.7, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
}
