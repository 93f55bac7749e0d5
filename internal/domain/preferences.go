package domain

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultQuality is the quality hint used when the user gives none
const DefaultQuality = "best"

// DownloadPreferences captures what the user wants for one download attempt
type DownloadPreferences struct {
	AudioOnly      bool   `json:"audio_only"`
	Quality        string `json:"quality"`
	Subtitles      bool   `json:"subtitles"`
	Thumbnail      bool   `json:"thumbnail"`
	CustomFilename string `json:"custom_filename,omitempty"`
}

// NewDownloadPreferences builds preferences, defaulting an empty quality to "best"
func NewDownloadPreferences(audioOnly bool, quality string, subtitles, thumbnail bool, customFilename string) DownloadPreferences {
	quality = strings.TrimSpace(quality)
	if quality == "" {
		quality = DefaultQuality
	}
	return DownloadPreferences{
		AudioOnly:      audioOnly,
		Quality:        quality,
		Subtitles:      subtitles,
		Thumbnail:      thumbnail,
		CustomFilename: strings.TrimSpace(customFilename),
	}
}

// WithFilename returns a copy carrying the given custom filename
func (p DownloadPreferences) WithFilename(name string) DownloadPreferences {
	p.CustomFilename = strings.TrimSpace(name)
	return p
}

// DownloadResult is the outcome of one collaborator call
type DownloadResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Path    string `json:"path,omitempty"`
}

// NewSuccessResult creates a successful result
func NewSuccessResult(message, path string) *DownloadResult {
	return &DownloadResult{Success: true, Message: message, Path: path}
}

// NewFailureResult creates a failed result; the error text is never empty
func NewFailureResult(prefix string, err error) *DownloadResult {
	detail := "unknown error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return &DownloadResult{
		Success: false,
		Message: prefix + ": " + detail,
		Error:   detail,
	}
}

// BatchJob is an ordered list of URLs sharing one set of preferences
type BatchJob struct {
	ID          string
	URLs        []string
	Preferences DownloadPreferences
}

// NewBatchJob creates a batch job
func NewBatchJob(urls []string, prefs DownloadPreferences) *BatchJob {
	return &BatchJob{
		ID:          uuid.New().String(),
		URLs:        urls,
		Preferences: prefs,
	}
}

// BatchSummary counts the outcome of a batch run
type BatchSummary struct {
	JobID      string `json:"job_id"`
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	OutputDir  string `json:"output_dir"`
}
