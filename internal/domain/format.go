package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const unknownValue = "Unknown"

// FormatDuration renders seconds as "1h 2m 5s", dropping leading zero units
func FormatDuration(seconds *int) string {
	if seconds == nil || *seconds < 0 {
		return unknownValue
	}

	s := *seconds
	hours := s / 3600
	minutes := (s % 3600) / 60
	secs := s % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with one decimal place, e.g. "1.5 MB"
func FormatSize(bytes *int64) string {
	if bytes == nil {
		return unknownValue
	}

	size := float64(*bytes)
	unit := sizeUnits[0]
	for i, u := range sizeUnits {
		unit = u
		if size < 1024 || i == len(sizeUnits)-1 {
			break
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}

// FormatCount renders an integer with thousands separators, e.g. "1,234,567"
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

var countPrinter = message.NewPrinter(language.English)
