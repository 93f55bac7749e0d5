package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoMetadata_NilReceiver(t *testing.T) {
	var meta *VideoMetadata

	assert.Equal(t, "Unknown", meta.TitleOr("Unknown"))
	assert.Equal(t, "Unknown", meta.UploaderOr("Unknown"))
	assert.Equal(t, "", meta.DescriptionOr(""))
	assert.Nil(t, meta.DurationSeconds())
	assert.Equal(t, int64(0), meta.Views())
	assert.False(t, meta.HasThumbnail())
	assert.False(t, meta.HasAnySubtitles())
}

func TestVideoMetadata_Accessors(t *testing.T) {
	meta := &VideoMetadata{
		Title:       StringPtr("Title"),
		Uploader:    StringPtr("   "),
		ViewCount:   Int64Ptr(42),
		Thumbnail:   StringPtr("https://i.ytimg.com/x.jpg"),
		HasCaptions: true,
	}

	assert.Equal(t, "Title", meta.TitleOr("Unknown"))
	assert.Equal(t, "Unknown", meta.UploaderOr("Unknown"))
	assert.Equal(t, int64(42), meta.Views())
	assert.True(t, meta.HasThumbnail())
	assert.True(t, meta.HasAnySubtitles())
}

func TestDownloadPreferences(t *testing.T) {
	prefs := NewDownloadPreferences(false, "  ", true, false, " name ")
	assert.Equal(t, "best", prefs.Quality)
	assert.Equal(t, "name", prefs.CustomFilename)

	renamed := prefs.WithFilename("other")
	assert.Equal(t, "other", renamed.CustomFilename)
	assert.Equal(t, "name", prefs.CustomFilename)
}

func TestDownloadResults(t *testing.T) {
	ok := NewSuccessResult("done", "/tmp/out")
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)

	failed := NewFailureResult("Download failed", errors.New("HTTP Error 403"))
	assert.False(t, failed.Success)
	assert.Equal(t, "HTTP Error 403", failed.Error)
	assert.Equal(t, "Download failed: HTTP Error 403", failed.Message)

	empty := NewFailureResult("Download failed", nil)
	assert.NotEmpty(t, empty.Error)
}

func TestNewBatchJob(t *testing.T) {
	job := NewBatchJob([]string{"https://youtu.be/1"}, NewDownloadPreferences(true, "", false, false, ""))
	assert.NotEmpty(t, job.ID)
	assert.Len(t, job.URLs, 1)
	assert.True(t, job.Preferences.AudioOnly)
}
