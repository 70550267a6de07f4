package utils

import (
	"strconv"
	"strings"
)

// PadFloat formats num with its integer part zero-padded to width,
// keeping any decimals as they are
func PadFloat(num float64, width int) string {
	str := strconv.FormatFloat(num, 'f', -1, 64)

	intPart, decimals, hasDecimals := strings.Cut(str, ".")

	if padding := width - len(intPart); padding > 0 {
		intPart = strings.Repeat("0", padding) + intPart
	}

	if hasDecimals {
		return intPart + "." + decimals
	}
	return intPart
}
