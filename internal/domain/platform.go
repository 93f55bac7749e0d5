package domain

import (
	"net"
	"net/url"
	"strings"
)

// Platform represents the video-hosting platform a URL belongs to
type Platform string

const (
	PlatformYouTube     Platform = "youtube"
	PlatformVimeo       Platform = "vimeo"
	PlatformDailymotion Platform = "dailymotion"
	PlatformTwitch      Platform = "twitch"
	PlatformTikTok      Platform = "tiktok"
	PlatformInstagram   Platform = "instagram"
	PlatformFacebook    Platform = "facebook"
	PlatformTwitter     Platform = "twitter" // X/Twitter
	PlatformRumble      Platform = "rumble"
	PlatformBitChute    Platform = "bitchute"
	PlatformGeneric     Platform = "generic"
)

// knownDomains maps video-hosting domain suffixes to their platform.
// Order matters only for readability; suffixes do not overlap.
var knownDomains = []struct {
	suffix   string
	platform Platform
}{
	{"youtube.com", PlatformYouTube},
	{"youtu.be", PlatformYouTube},
	{"youtube-nocookie.com", PlatformYouTube},
	{"vimeo.com", PlatformVimeo},
	{"dailymotion.com", PlatformDailymotion},
	{"twitch.tv", PlatformTwitch},
	{"tiktok.com", PlatformTikTok},
	{"instagram.com", PlatformInstagram},
	{"facebook.com", PlatformFacebook},
	{"twitter.com", PlatformTwitter},
	{"x.com", PlatformTwitter},
	{"rumble.com", PlatformRumble},
	{"bitchute.com", PlatformBitChute},
}

// DisplayName returns a human-readable platform name
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformVimeo:
		return "Vimeo"
	case PlatformDailymotion:
		return "Dailymotion"
	case PlatformTwitch:
		return "Twitch"
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	case PlatformFacebook:
		return "Facebook"
	case PlatformTwitter:
		return "X/Twitter"
	case PlatformRumble:
		return "Rumble"
	case PlatformBitChute:
		return "BitChute"
	default:
		return "this platform"
	}
}

// IsValidURL reports whether s parses into a URL with both a scheme and a host
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// PlatformHint detects the platform from a URL. Malformed input and
// unknown hosts yield PlatformGeneric.
func PlatformHint(s string) Platform {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return PlatformGeneric
	}

	host := strings.ToLower(u.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	for _, d := range knownDomains {
		if host == d.suffix || strings.HasSuffix(host, "."+d.suffix) {
			return d.platform
		}
	}
	return PlatformGeneric
}

// IsLikelyVideoURL is the shared filter used by every link extraction pass
func IsLikelyVideoURL(s string) bool {
	return IsValidURL(s) && PlatformHint(s) != PlatformGeneric
}
