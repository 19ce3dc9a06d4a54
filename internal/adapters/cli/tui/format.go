package tui

import "github.com/dustin/go-humanize"

// FormatBytes formats a byte count for display, e.g. 1500 -> "1.5 kB"
func FormatBytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.Bytes(uint64(b))
}

// Truncate shortens s to at most maxLen runes
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
