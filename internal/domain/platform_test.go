package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/x", true},
		{"http://youtu.be/abc", true},
		{"ftp://files.example.org", true},
		{"a.com", false},
		{"not a url", false},
		{"https://", false},
		{"/just/a/path", false},
		{"", false},
		{"://missing-scheme.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.input))
		})
	}
}

func TestPlatformHint(t *testing.T) {
	tests := []struct {
		input string
		want  Platform
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube},
		{"https://youtu.be/dQw4w9WgXcQ", PlatformYouTube},
		{"https://M.YouTube.com/watch?v=1", PlatformYouTube},
		{"https://www.youtube.com:443/watch?v=1", PlatformYouTube},
		{"https://vimeo.com/123456", PlatformVimeo},
		{"https://www.dailymotion.com/video/x7", PlatformDailymotion},
		{"https://www.twitch.tv/videos/99", PlatformTwitch},
		{"https://www.tiktok.com/@user/video/1", PlatformTikTok},
		{"https://x.com/user/status/1", PlatformTwitter},
		{"https://twitter.com/user/status/1", PlatformTwitter},
		{"https://rumble.com/v1-clip.html", PlatformRumble},
		{"https://www.netflix.com/title/1", PlatformGeneric},
		{"https://notyoutube.com/watch", PlatformGeneric},
		{"https://example.com", PlatformGeneric},
		{"garbage", PlatformGeneric},
		{"", PlatformGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, PlatformHint(tt.input))
		})
	}
}

func TestIsLikelyVideoURL(t *testing.T) {
	assert.True(t, IsLikelyVideoURL("https://vimeo.com/1"))
	assert.False(t, IsLikelyVideoURL("https://example.com/video.mp4"))
	assert.False(t, IsLikelyVideoURL("youtube.com/watch?v=1"))
}

func TestPlatform_DisplayName(t *testing.T) {
	assert.Equal(t, "YouTube", PlatformYouTube.DisplayName())
	assert.Equal(t, "X/Twitter", PlatformTwitter.DisplayName())
	assert.Equal(t, "this platform", PlatformGeneric.DisplayName())
}
