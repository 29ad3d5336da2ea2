package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	oldPlatePattern      = regexp.MustCompile(`^[A-Z]{3}\d{4}$`)
	mercosulPlatePattern = regexp.MustCompile(`^[A-Z]{3}\d[A-Z]\d{2}$`)
	nonDigitPattern      = regexp.MustCompile(`\D`)
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// stripNonDigits removes everything except 0-9.
func stripNonDigits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}

// IsValidCNPJ validates a Brazilian CNPJ, with or without formatting
// (XX.XXX.XXX/XXXX-XX). Repeated-digit sequences are rejected and both
// check digits are verified.
func IsValidCNPJ(cnpj string) bool {
	clean := stripNonDigits(cnpj)

	if len(clean) != 14 {
		return false
	}
	if allSameDigit(clean) {
		return false
	}

	if int(clean[12]-'0') != cnpjCheckDigit(clean[:12]) {
		return false
	}
	return int(clean[13]-'0') == cnpjCheckDigit(clean[:13])
}

// cnpjCheckDigit computes the mod-11 verification digit for the given prefix.
// Weights cycle 2..9 from the rightmost digit.
func cnpjCheckDigit(digits string) int {
	sum := 0
	pos := len(digits) - 7
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

// FormatCNPJ renders a 14-digit CNPJ as XX.XXX.XXX/XXXX-XX.
func FormatCNPJ(cnpj string) string {
	clean := stripNonDigits(cnpj)
	if len(clean) != 14 {
		return cnpj
	}
	return clean[:2] + "." + clean[2:5] + "." + clean[5:8] + "/" + clean[8:12] + "-" + clean[12:]
}

// NormalizePlate trims, uppercases and strips the hyphen from a plate.
func NormalizePlate(plate string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(plate)), "-", "")
}

// IsValidPlate accepts the old Brazilian format (ABC-1234 / ABC1234) and the
// Mercosul format (ABC1D23 / ABC-1D23).
func IsValidPlate(plate string) bool {
	normalized := NormalizePlate(plate)
	return oldPlatePattern.MatchString(normalized) || mercosulPlatePattern.MatchString(normalized)
}

// FormatPlate renders a valid plate with the display hyphen (ABC-1234, ABC-1D23).
// Invalid plates are returned normalized.
func FormatPlate(plate string) string {
	normalized := NormalizePlate(plate)
	if !IsValidPlate(normalized) {
		return normalized
	}
	return normalized[:3] + "-" + normalized[3:]
}

// IsValidPhone validates a Brazilian mobile number: 11 digits including the
// two-digit area code, rejecting repeated-digit sequences.
func IsValidPhone(phone string) bool {
	clean := stripNonDigits(phone)
	if len(clean) != 11 {
		return false
	}
	return !allSameDigit(clean)
}

// FormatPhone renders an 11-digit number as (XX) XXXXX-XXXX.
func FormatPhone(phone string) string {
	clean := stripNonDigits(phone)
	if len(clean) != 11 {
		return phone
	}
	return "(" + clean[:2] + ") " + clean[2:7] + "-" + clean[7:]
}
