package downloads

import (
	"fmt"
	"path/filepath"

	"ryt/internal/domain/command"
	"ryt/internal/domain/consts"
	"ryt/internal/models"
)

// OutputTemplate returns the -o template for a content type under root.
func OutputTemplate(root string, ct models.ContentType) string {
	if ct == models.ContentPlaylist {
		return filepath.Join(root, consts.PlaylistsDir, command.PlaylistSyntax, command.FilenameSyntax)
	}
	return filepath.Join(root, consts.SingleVideosDir, command.FilenameSyntax)
}

// FormatSpec returns the -f selector for a video quality.
func FormatSpec(q models.Quality) string {
	if h, ok := q.Height(); ok {
		return fmt.Sprintf(command.FormatHeightCapped, h)
	}
	return command.FormatBest
}

// FormatArgs returns the format selection arguments. Audio ignores quality.
func FormatArgs(f models.Format, q *models.Quality) []string {
	switch f {
	case models.FormatAudio:
		return []string{
			command.ExtractAudio,
			command.AudioFormat, command.AudioFormatBest,
			command.AudioQuality, command.AudioQualityBest,
		}
	case models.FormatVideo:
		if q == nil {
			return nil
		}
		return []string{command.Format, FormatSpec(*q)}
	}
	return nil
}

// BuildArgs returns the yt-dlp arguments for a request. cookieFile may be empty.
func BuildArgs(root string, req models.DownloadRequest, cookieFile string) []string {
	args := make([]string, 0, 12)

	args = append(args, command.Output, OutputTemplate(root, req.ContentType))
	args = append(args, FormatArgs(req.Format, req.Quality)...)

	// Newline-delimited progress, otherwise yt-dlp redraws one line with \r
	args = append(args, command.Newline)

	if cookieFile != "" {
		args = append(args, command.Cookies, cookieFile)
	}

	// Add target URL [ MUST GO LAST !! ]
	args = append(args, req.URL)
	return args
}
