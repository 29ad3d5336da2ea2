package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCNPJ(t *testing.T) {
	assert.True(t, IsValidCNPJ("11.222.333/0001-81"))
	assert.True(t, IsValidCNPJ("11222333000181"))

	assert.False(t, IsValidCNPJ("11.222.333/0001-80"), "wrong check digit")
	assert.False(t, IsValidCNPJ("11111111111111"), "repeated digits")
	assert.False(t, IsValidCNPJ("1122233300018"), "too short")
	assert.False(t, IsValidCNPJ(""))
}

func TestFormatCNPJ(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))
	assert.Equal(t, "123", FormatCNPJ("123"), "invalid input returned unchanged")
}

func TestIsValidPlate(t *testing.T) {
	assert.True(t, IsValidPlate("ABC-1234"), "old format with hyphen")
	assert.True(t, IsValidPlate("ABC1234"), "old format")
	assert.True(t, IsValidPlate("ABC1D23"), "mercosul format")
	assert.True(t, IsValidPlate("abc1d23"), "lowercase is normalized")

	assert.False(t, IsValidPlate("ABCD123"))
	assert.False(t, IsValidPlate("AB12345"))
	assert.False(t, IsValidPlate(""))
}

func TestFormatPlate(t *testing.T) {
	assert.Equal(t, "ABC-1234", FormatPlate("abc1234"))
	assert.Equal(t, "ABC-1D23", FormatPlate("ABC1D23"))
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC1234", NormalizePlate("  abc-1234 "))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("11987654321"))
	assert.True(t, IsValidPhone("(11) 98765-4321"))

	assert.False(t, IsValidPhone("1198765432"), "too short")
	assert.False(t, IsValidPhone("11111111111"), "repeated digits")
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", FormatPhone("11987654321"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("driver@example.com"))
	assert.False(t, IsValidEmail("driver@example"))
	assert.False(t, IsValidEmail("not an email"))
}

func TestRenderPlate(t *testing.T) {
	out := RenderPlate("Os faróis do veículo {{PLATE}} estão acesos.", "ABC1234")
	assert.Equal(t, "Os faróis do veículo ABC-1234 estão acesos.", out)
}
