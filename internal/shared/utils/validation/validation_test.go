package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSeatID(t *testing.T) {
	valid := []string{"A1", "B10", "C8", "Z99"}
	for _, s := range valid {
		assert.True(t, IsValidSeatID(s), "expected %s to be valid", s)
	}

	invalid := []string{"", "a1", "A0", "A100", "1A", "AA1", "A-1", " A1"}
	for _, s := range invalid {
		assert.False(t, IsValidSeatID(s), "expected %s to be invalid", s)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"9876543210",
		"+919876543210",
		"+91 98765 43210",
		"98765-43210",
		"6000000000",
	}
	for _, s := range valid {
		assert.True(t, IsValidPhone(s), "expected %s to be valid", s)
	}

	invalid := []string{
		"",
		"1234567890",  // must start with 6-9
		"987654321",   // too short
		"98765432101", // too long
		"abcdefghij",
	}
	for _, s := range invalid {
		assert.False(t, IsValidPhone(s), "expected %s to be invalid", s)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("+91 98765-43210"))
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
}
