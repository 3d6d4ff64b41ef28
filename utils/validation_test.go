package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid, _ := ValidateEmail("adi@warungin.com")
	assert.True(t, valid)

	for _, bad := range []string{"", "adi", "adi@", "@warungin.com", "adi@warungin"} {
		valid, _ := ValidateEmail(bad)
		assert.False(t, valid, "expected %q to be invalid", bad)
	}
}

func TestValidatePassword(t *testing.T) {
	valid, _ := ValidatePassword("Warung1n")
	assert.True(t, valid)

	cases := map[string]string{
		"short":      "Ab1",
		"no upper":   "warungin1",
		"no lower":   "WARUNGIN1",
		"no number":  "Warungins",
	}
	for name, password := range cases {
		valid, msg := ValidatePassword(password)
		assert.False(t, valid, name)
		assert.NotEmpty(t, msg, name)
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	for _, input := range []string{"081234567890", "+6281234567890", "6281234567890", "0812-3456-7890"} {
		formatted, err := FormatPhoneNumber(input)
		assert.NoError(t, err, input)
		assert.Equal(t, "81234567890", formatted, input)
	}

	_, err := FormatPhoneNumber("021555123")
	assert.Error(t, err)

	_, err = FormatPhoneNumber("08123")
	assert.Error(t, err)
}

func TestValidatePhoneOptional(t *testing.T) {
	valid, formatted := ValidatePhone("")
	assert.True(t, valid)
	assert.Empty(t, formatted)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(50000))
	assert.Error(t, ValidateAmount(0))
	assert.Error(t, ValidateAmount(-100))
}
