// Package keys holds flag and viper keys.
package keys

// Persistent flags
const (
	URL        string = "url"
	Verbose    string = "verbose"
	ConfigFile string = "config"
	YtdlpPath  string = "ytdlp-path"
)

// Download flags
const (
	ContentType string = "type"
	Format      string = "format"
	Quality     string = "quality"
)

// History flags
const (
	HistoryLimit string = "limit"
	HistorySince string = "since"
)
