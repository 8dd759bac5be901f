package ui

import "strings"

// truncateMiddle shortens a string by removing characters from the middle,
// keeping both the beginning and the end.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
