package models

// Settings is the persisted ryt configuration.
type Settings struct {
	DownloadDir            string `toml:"download_dir"`
	DefaultQuality         string `toml:"default_quality"`
	DefaultFormat          string `toml:"default_format"`
	YtdlpPath              string `toml:"ytdlp_path,omitempty"`
	MaxConcurrentDownloads int    `toml:"max_concurrent_downloads"`
	BrowserCookies         bool   `toml:"browser_cookies"`
}

// ToolCommand returns the yt-dlp executable to run.
func (s *Settings) ToolCommand(fallback string) string {
	if s.YtdlpPath != "" {
		return s.YtdlpPath
	}
	return fallback
}

// Concurrency returns the download concurrency limit, at least 1.
func (s *Settings) Concurrency() int {
	if s.MaxConcurrentDownloads < 1 {
		return 1
	}
	return s.MaxConcurrentDownloads
}
