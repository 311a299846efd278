package stats

import (
	"strconv"
)

// IsChild reports whether an age-range string such as "7-10" or "21+"
// describes a child bracket. Only the leading integer matters: below 10
// is a child. Empty or malformed values fall back to the adult bucket.
func IsChild(ageRange string) bool {
	low, ok := leadingInt(ageRange)
	return ok && low < 10
}

func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
