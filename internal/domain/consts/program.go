package consts

// Program identity.
const (
	ProgramName = "ryt"
	EnvPrefix   = "RYT"
)

// Program files, stored together in the per-user config directory.
const (
	ConfigFile  = "config.toml"
	HistoryFile = "history.db"
	LogFile     = "ryt.log"
)

// Download tree under the download root.
const (
	SingleVideosDir = "single-videos"
	PlaylistsDir    = "playlists"
)

// Settings defaults.
const (
	DefaultQuality       = "1080p"
	DefaultFormat        = "video"
	DefaultMaxConcurrent = 3
)

// Log rotation.
const (
	LogMaxSizeMB  = 1
	LogMaxBackups = 3
)

// InstallGuideURL is shown when yt-dlp cannot be found.
const InstallGuideURL = "https://github.com/yt-dlp/yt-dlp#installation"
