package utils

import (
	"strconv"
	"strings"
)

// PlatePlaceholder marks where alert templates receive the vehicle plate.
const PlatePlaceholder = "{{PLATE}}"

// RenderPlate substitutes the placeholder in alert templates with the
// display form of the plate.
func RenderPlate(template, plate string) string {
	return strings.ReplaceAll(template, PlatePlaceholder, FormatPlate(plate))
}

func UintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
