package domain

import "strings"

// ParseURLList splits text on newlines and commas and keeps the valid URLs.
// Order is preserved and duplicates are kept: a batch list is processed
// exactly as the user wrote it.
func ParseURLList(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, ",", "\n")

	urls := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && IsValidURL(line) {
			urls = append(urls, line)
		}
	}
	return urls
}
