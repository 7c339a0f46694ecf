package common

import (
	"fmt"
	"math"
	"strconv"
)

// FormatLargeNumber renders a yen amount in a compact human-readable form:
// trillions as ¥1.2T, hundred-millions as ¥340億, millions as ¥5.1M,
// anything smaller with thousands separators. Zero or missing values
// render as "N/A" to match the published document format.
func FormatLargeNumber(value float64) string {
	if value == 0 {
		return "N/A"
	}

	abs := math.Abs(value)
	sign := ""
	if value < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%s¥%.1fT", sign, abs/1e12)
	case abs >= 1e8:
		return fmt.Sprintf("%s¥%.0f億", sign, abs/1e8)
	case abs >= 1e6:
		return fmt.Sprintf("%s¥%.1fM", sign, abs/1e6)
	default:
		return sign + "¥" + groupThousands(abs)
	}
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	n := len(s)
	if n <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
