package models

import "time"

// HistoryEntry is one recorded download attempt.
type HistoryEntry struct {
	ID          int64      `json:"id"`
	RunID       string     `json:"run_id"`
	URL         string     `json:"url"`
	ContentType string     `json:"content_type"`
	Format      string     `json:"format"`
	Quality     string     `json:"quality,omitempty"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Request rebuilds the download request recorded in the entry.
func (h *HistoryEntry) Request() (DownloadRequest, error) {
	ct, err := ParseContentType(h.ContentType)
	if err != nil {
		return DownloadRequest{}, err
	}
	f, err := ParseFormat(h.Format)
	if err != nil {
		return DownloadRequest{}, err
	}
	var q Quality
	if f == FormatVideo && h.Quality != "" {
		if q, err = ParseQuality(h.Quality); err != nil {
			return DownloadRequest{}, err
		}
	}
	return NewDownloadRequest(h.URL, ct, f, q), nil
}
