package domain

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// DefaultFilename is used when metadata yields nothing usable
	DefaultFilename = "video_download"

	filenameSeparator   = " - "
	maxUploaderLength   = 20
	maxTitleLength      = 50
	maxSanitizedLength  = 200
	forbiddenFilenameCh = `<>:"/\|?*`
)

// SanitizeFilename makes a name safe to use as an output-path template
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenFilenameCh, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	return truncateRunes(name, maxSanitizedLength)
}

// SuggestFilename derives "uploader - title - duration" from metadata.
// It is a pure function: identical metadata always gives the same name.
func SuggestFilename(meta *VideoMetadata) string {
	var parts []string

	if uploader := meta.UploaderOr(""); isUsablePart(uploader) {
		parts = append(parts, truncateRunes(uploader, maxUploaderLength))
	}

	if title := meta.TitleOr(""); isUsablePart(title) {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
				return r
			}
			return -1
		}, title)
		clean = strings.Join(strings.Fields(clean), " ")
		if clean != "" {
			parts = append(parts, truncateRunes(clean, maxTitleLength))
		}
	}

	if d := meta.DurationSeconds(); d != nil && *d > 0 {
		parts = append(parts, durationToken(*d))
	}

	suggested := strings.Join(parts, filenameSeparator)
	if strings.TrimSpace(suggested) == "" {
		return DefaultFilename
	}
	return suggested
}

// durationToken renders whole minutes as "12m", or "1h5m" from 60 minutes up
func durationToken(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
}

func isUsablePart(s string) bool {
	return s != "" && !strings.EqualFold(s, "unknown")
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
