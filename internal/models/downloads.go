package models

import (
	"fmt"
	"strings"
)

// ContentType selects a single item or a whole playlist.
type ContentType string

const (
	ContentSingle   ContentType = "single"
	ContentPlaylist ContentType = "playlist"
)

// Format selects video with audio, or audio only.
type Format string

const (
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
)

// Quality is the maximum vertical resolution, or QualityBest.
type Quality string

const (
	Quality480p  Quality = "480p"
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
	Quality1440p Quality = "1440p"
	Quality2160p Quality = "2160p"
	QualityBest  Quality = "best"
)

// Qualities lists every quality in menu order.
var Qualities = []Quality{Quality480p, Quality720p, Quality1080p, Quality1440p, Quality2160p, QualityBest}

// qualityHeights maps capped qualities to pixel heights. QualityBest has no entry.
var qualityHeights = map[Quality]int{
	Quality480p:  480,
	Quality720p:  720,
	Quality1080p: 1080,
	Quality1440p: 1440,
	Quality2160p: 2160,
}

// Height returns the pixel height for q, false for QualityBest or unknown values.
func (q Quality) Height() (int, bool) {
	h, ok := qualityHeights[q]
	return h, ok
}

// ParseContentType parses "single" or "playlist".
func ParseContentType(s string) (ContentType, error) {
	switch c := ContentType(strings.ToLower(strings.TrimSpace(s))); c {
	case ContentSingle, ContentPlaylist:
		return c, nil
	}
	return "", fmt.Errorf("unknown content type %q (want single or playlist)", s)
}

// ParseFormat parses "video" or "audio".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatVideo, FormatAudio:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want video or audio)", s)
}

// ParseQuality parses a quality such as "720p" or "best". A bare height like "720" is accepted.
func ParseQuality(s string) (Quality, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v != "" && !strings.HasSuffix(v, "p") && v != string(QualityBest) {
		v += "p"
	}
	q := Quality(v)
	if q == QualityBest {
		return q, nil
	}
	if _, ok := qualityHeights[q]; ok {
		return q, nil
	}
	return "", fmt.Errorf("unknown quality %q", s)
}

// DownloadRequest is one user-requested download.
type DownloadRequest struct {
	URL         string
	ContentType ContentType
	Format      Format

	// Quality is set only for FormatVideo.
	Quality *Quality
}

// NewDownloadRequest builds a request, dropping quality for audio and defaulting it to best for video.
func NewDownloadRequest(url string, ct ContentType, f Format, q Quality) DownloadRequest {
	req := DownloadRequest{
		URL:         url,
		ContentType: ct,
		Format:      f,
	}
	if f == FormatVideo {
		if q == "" {
			q = QualityBest
		}
		req.Quality = &q
	}
	return req
}

// QualityString returns the quality, or "" when none applies.
func (r DownloadRequest) QualityString() string {
	if r.Quality == nil {
		return ""
	}
	return string(*r.Quality)
}
