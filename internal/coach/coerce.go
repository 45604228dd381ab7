package coach

import (
	"math"
	"strconv"
	"strings"
)

// CoerceCount turns a sets/reps field edit into a non-negative integer.
// Like parseInt in a browser, it reads the leading integer and ignores the
// rest; text without one yields 0.
func CoerceCount(text string) int {
	n, ok := leadingInt(strings.TrimSpace(text))
	if !ok || n < 0 {
		return 0
	}
	return n
}

// CoerceWeight turns a weight field edit into a non-negative number.
// Decimals are accepted; otherwise it falls back to CoerceCount rules.
func CoerceWeight(text string) float64 {
	text = strings.TrimSpace(text)
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return float64(CoerceCount(text))
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
