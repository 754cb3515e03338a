package validation

import (
	"net/url"
	"strings"
)

// supportedDomains are the hosts accepted by IsValidURL, along with their subdomains.
var supportedDomains = []string{
	"youtube.com",
	"www.youtube.com",
	"youtu.be",
	"m.youtube.com",
	"music.youtube.com",
	"vimeo.com",
	"www.vimeo.com",
	"dailymotion.com",
	"www.dailymotion.com",
	"twitch.tv",
	"www.twitch.tv",
	"soundcloud.com",
	"www.soundcloud.com",
	"tiktok.com",
	"www.tiktok.com",
}

// SupportedPlatforms names the platforms for user-facing messages.
const SupportedPlatforms = "YouTube, Vimeo, Dailymotion, SoundCloud, Twitch, TikTok"

// IsValidURL reports whether input is an absolute URL on a supported host.
func IsValidURL(input string) bool {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Scheme == "" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	return IsSupportedDomain(host)
}

// IsSupportedDomain matches host against the allow-list on dot boundaries,
// so "youtube.com.evil.com" and "fake-youtube.com" are rejected.
func IsSupportedDomain(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, domain := range supportedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
