// Package downloads builds, runs and supervises yt-dlp downloads.
package downloads

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ryt/internal/config"
	"ryt/internal/domain/command"
	"ryt/internal/domain/errconsts"
	"ryt/internal/domain/logger"
	"ryt/internal/models"
	"ryt/internal/progress"
)

// Recorder records download attempts, e.g. into the history database.
type Recorder interface {
	RecordStart(ctx context.Context, runID string, req models.DownloadRequest) (int64, error)
	RecordFinish(ctx context.Context, id int64, dlErr error) error
}

// CookieExporter writes a yt-dlp cookies file for a URL.
// The returned cleanup removes the file and is never nil.
type CookieExporter interface {
	ExportCookies(ctx context.Context, rawURL string) (path string, cleanup func(), err error)
}

// IndicatorFunc creates a progress indicator. shared is true when several
// downloads write to the terminal at once.
type IndicatorFunc func(label string, shared bool) progress.Indicator

// Downloader runs yt-dlp for download requests.
type Downloader struct {
	Settings *models.Settings

	toolCmd      string
	out          io.Writer
	recorder     Recorder
	cookies      CookieExporter
	newIndicator IndicatorFunc
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithOutput sets where progress and messages are written.
func WithOutput(w io.Writer) Option {
	return func(d *Downloader) { d.out = w }
}

// WithRecorder records every download attempt.
func WithRecorder(r Recorder) Option {
	return func(d *Downloader) { d.recorder = r }
}

// WithCookies passes exported browser cookies to yt-dlp.
func WithCookies(c CookieExporter) Option {
	return func(d *Downloader) { d.cookies = c }
}

// WithIndicator overrides how progress indicators are created.
func WithIndicator(f IndicatorFunc) Option {
	return func(d *Downloader) { d.newIndicator = f }
}

// New returns a downloader for settings, creating the download directories.
func New(settings *models.Settings, opts ...Option) (*Downloader, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if err := config.EnsureDownloadDirs(settings); err != nil {
		return nil, err
	}

	d := &Downloader{
		Settings: settings,
		toolCmd:  settings.ToolCommand(command.YTDLP),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.newIndicator == nil {
		out := d.out
		d.newIndicator = func(label string, shared bool) progress.Indicator {
			if shared {
				return progress.NewLines(out, label)
			}
			return progress.NewBar(out, label)
		}
	}
	return d, nil
}

// Tool returns the yt-dlp executable in use.
func (d *Downloader) Tool() string {
	return d.toolCmd
}

// CheckAvailability runs "yt-dlp --version". Any failure is ErrToolNotFound.
func (d *Downloader) CheckAvailability(ctx context.Context) error {
	output, err := exec.CommandContext(ctx, d.toolCmd, command.Version).Output()
	if err != nil {
		logger.Pl.D("yt-dlp check with %q failed: %v", d.toolCmd, err)
		return fmt.Errorf("%w: %v", errconsts.ErrToolNotFound, err)
	}
	logger.Pl.I("Using %s version %s", d.toolCmd, strings.TrimSpace(string(output)))
	return nil
}
