package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDownloadRecord(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	prefs := NewDownloadPreferences(true, "720p", false, false, "My Clip")

	record := NewDownloadRecord(url, prefs)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, url, record.URL)
	assert.Equal(t, PlatformYouTube, record.Platform)
	assert.Equal(t, StatusQueued, record.Status)
	assert.True(t, record.AudioOnly)
	assert.Equal(t, "720p", record.Quality)
	assert.Equal(t, "My Clip", record.Filename)
	assert.False(t, record.IsTerminal())
}

func TestDownloadRecord_MarkProcessing(t *testing.T) {
	record := NewDownloadRecord("https://vimeo.com/1", NewDownloadPreferences(false, "", false, false, ""))

	record.MarkProcessing()

	assert.Equal(t, StatusProcessing, record.Status)
	assert.NotNil(t, record.StartedAt)
}

func TestDownloadRecord_MarkCompleted(t *testing.T) {
	record := NewDownloadRecord("https://vimeo.com/1", NewDownloadPreferences(false, "", false, false, ""))
	record.ErrorMessage = "stale"

	record.MarkCompleted()

	assert.Equal(t, StatusCompleted, record.Status)
	assert.NotNil(t, record.CompletedAt)
	assert.Empty(t, record.ErrorMessage)
	assert.True(t, record.IsTerminal())
}

func TestDownloadRecord_MarkFailed(t *testing.T) {
	record := NewDownloadRecord("https://vimeo.com/1", NewDownloadPreferences(false, "", false, false, ""))

	record.MarkFailed("network error")

	assert.Equal(t, StatusFailed, record.Status)
	assert.Equal(t, "network error", record.ErrorMessage)
	assert.True(t, record.IsTerminal())
}

func TestValidateStatus(t *testing.T) {
	assert.True(t, ValidateStatus(StatusQueued))
	assert.True(t, ValidateStatus(StatusCompleted))
	assert.False(t, ValidateStatus("cancelled"))
	assert.False(t, ValidateStatus(""))
}
