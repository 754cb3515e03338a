// Package command holds yt-dlp arguments and output templates.
package command

// General
const (
	YTDLP   = "yt-dlp"
	Version = "--version"
	Output  = "-o"
	Format  = "-f"
	Newline = "--newline"
	Cookies = "--cookies"
)

// Audio only
const (
	ExtractAudio = "--extract-audio"
	AudioFormat  = "--audio-format"
	AudioQuality = "--audio-quality"

	AudioFormatBest  = "best"
	AudioQualityBest = "0"
)

// Format selection
const (
	FormatBest = "best"

	// FormatHeightCapped prefers separate streams capped at a height, else one combined stream.
	FormatHeightCapped = "bestvideo[height<=%[1]d]+bestaudio/best[height<=%[1]d]"
)

// Output templates, resolved by yt-dlp.
const (
	FilenameSyntax = "%(title)s.%(ext)s"
	PlaylistSyntax = "%(playlist_title)s"
)

// Progress markers
const (
	DownloadTag  = "[download]"
	TagSeparator = "] "
)
