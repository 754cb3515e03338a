// Package browser exports browser cookies for yt-dlp.
package browser

import (
	"fmt"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// BaseDomain returns the base domain for an inputted URL.
func BaseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return publicsuffix.EffectiveTLDPlusOne(u.Hostname())
}

// keysFromMap returns the keys of m.
func keysFromMap(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
