package live

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// truncateCell cuts a string to width runes for table display.
func truncateCell(text string, width int) string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return text
	}
	runes := []rune(text)
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// formatWhen renders a call timestamp as local wall-clock time.
func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("15:04:05")
}

// formatDuration renders a call duration in seconds with one decimal.
func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// formatStatus renders the HTTP status, "-" when no response arrived.
func formatStatus(status int) string {
	if status == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", status)
}
