package domain

import "strings"

// VideoMetadata is the partial view of a video reported by the media
// extractor. Every field may be absent; use the accessors, which all
// tolerate a nil receiver.
type VideoMetadata struct {
	ID           string             `json:"id,omitempty"`
	Title        *string            `json:"title,omitempty"`
	Uploader     *string            `json:"uploader,omitempty"`
	Duration     *int               `json:"duration,omitempty"` // seconds
	ViewCount    *int64             `json:"view_count,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Thumbnail    *string            `json:"thumbnail,omitempty"`
	WebpageURL   string             `json:"webpage_url,omitempty"`
	HasSubtitles bool               `json:"has_subtitles"`
	HasCaptions  bool               `json:"has_automatic_captions"`
	Formats      []FormatDescriptor `json:"formats,omitempty"`
}

// FormatDescriptor describes one downloadable format
type FormatDescriptor struct {
	ID         string  `json:"format_id"`
	Extension  string  `json:"ext"`
	Resolution string  `json:"resolution"` // "audio only" when there is no video stream
	Size       *int64  `json:"filesize,omitempty"`
	Note       string  `json:"format_note,omitempty"`
	Quality    float64 `json:"quality"`
}

// TitleOr returns the title or def when absent
func (m *VideoMetadata) TitleOr(def string) string {
	if m == nil {
		return def
	}
	return stringOr(m.Title, def)
}

// UploaderOr returns the uploader or def when absent
func (m *VideoMetadata) UploaderOr(def string) string {
	if m == nil {
		return def
	}
	return stringOr(m.Uploader, def)
}

// DescriptionOr returns the description or def when absent
func (m *VideoMetadata) DescriptionOr(def string) string {
	if m == nil {
		return def
	}
	return stringOr(m.Description, def)
}

// DurationSeconds returns the duration, or nil when unknown
func (m *VideoMetadata) DurationSeconds() *int {
	if m == nil {
		return nil
	}
	return m.Duration
}

// Views returns the view count, or 0 when unknown
func (m *VideoMetadata) Views() int64 {
	if m == nil || m.ViewCount == nil {
		return 0
	}
	return *m.ViewCount
}

// HasThumbnail reports whether a thumbnail URL was advertised
func (m *VideoMetadata) HasThumbnail() bool {
	return m != nil && m.Thumbnail != nil && *m.Thumbnail != ""
}

// HasAnySubtitles reports whether subtitles or automatic captions exist
func (m *VideoMetadata) HasAnySubtitles() bool {
	return m != nil && (m.HasSubtitles || m.HasCaptions)
}

func stringOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n
func IntPtr(n int) *int { return &n }

// Int64Ptr returns a pointer to n
func Int64Ptr(n int64) *int64 { return &n }
