package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var magnitudes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// ParseCount converts a human-formatted count ("4,821", "1.2K", "3.4M") into
// an integer. A dot without a magnitude suffix followed by exactly three
// digits is read as a thousands separator ("1.234" == 1234).
func ParseCount(raw string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || !hasDigit(s) {
		return 0, fmt.Errorf("not a count: %q", raw)
	}

	multiplier := 1.0
	if m, ok := magnitudes[s[len(s)-1]]; ok {
		multiplier = m
		s = s[:len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", "")
	if multiplier == 1 && strings.Count(s, ".") > 0 {
		parts := strings.Split(s, ".")
		if len(parts[len(parts)-1]) == 3 {
			s = strings.Join(parts, "")
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse count %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative count %q", raw)
	}
	return int64(math.Round(value * multiplier)), nil
}
