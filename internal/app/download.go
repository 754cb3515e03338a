package app

import (
	"context"
	"fmt"

	"ryt/internal/domain/errconsts"
	"ryt/internal/models"
	"ryt/internal/validation"
)

// DownloadOptions preselect answers that would otherwise be prompted for.
type DownloadOptions struct {
	ContentType models.ContentType
	Format      models.Format
	Quality     models.Quality
}

// ParseDownloadOptions parses flag values. Empty values stay unset.
func ParseDownloadOptions(contentType, format, quality string) (DownloadOptions, error) {
	var (
		opts DownloadOptions
		err  error
	)
	if contentType != "" {
		if opts.ContentType, err = models.ParseContentType(contentType); err != nil {
			return opts, fmt.Errorf("%w: %w", errconsts.ErrInvalidSetting, err)
		}
	}
	if format != "" {
		if opts.Format, err = models.ParseFormat(format); err != nil {
			return opts, fmt.Errorf("%w: %w", errconsts.ErrInvalidSetting, err)
		}
	}
	if quality != "" {
		if opts.Quality, err = models.ParseQuality(quality); err != nil {
			return opts, fmt.Errorf("%w: %w", errconsts.ErrInvalidSetting, err)
		}
		if opts.Format == "" {
			opts.Format = models.FormatVideo
		}
	}
	return opts, nil
}

// HandleDownload validates urls, asks for anything opts leaves open and runs the downloads.
// With no urls the user is asked for one.
func (a *App) HandleDownload(ctx context.Context, urls []string, opts DownloadOptions) error {
	if len(urls) == 0 {
		url, err := a.UI.GetURL()
		if err != nil {
			return err
		}
		urls = []string{url}
	}

	for _, url := range urls {
		if !validation.IsValidURL(url) {
			a.UI.Error("Invalid URL format or unsupported platform: %s", url)
			a.UI.Info("Supported platforms: %s, and their subdomains", validation.SupportedPlatforms)
			return fmt.Errorf("%w: %q", errconsts.ErrInvalidURL, url)
		}
	}

	reqOpts, err := a.completeOptions(opts)
	if err != nil {
		return err
	}

	reqs := make([]models.DownloadRequest, 0, len(urls))
	for _, url := range urls {
		reqs = append(reqs, models.NewDownloadRequest(url, reqOpts.ContentType, reqOpts.Format, reqOpts.Quality))
	}
	return a.Downloader.DownloadAll(ctx, reqs)
}

// completeOptions prompts for every unset option, defaulting from settings.
func (a *App) completeOptions(opts DownloadOptions) (DownloadOptions, error) {
	var err error
	if opts.ContentType == "" {
		if opts.ContentType, err = a.UI.GetContentType(); err != nil {
			return opts, err
		}
	}
	// Settings defaults are validated when the config file is loaded
	if opts.Format == "" {
		if opts.Format, err = a.UI.GetFormat(models.Format(a.Settings.DefaultFormat)); err != nil {
			return opts, err
		}
	}
	if opts.Format == models.FormatVideo && opts.Quality == "" {
		if opts.Quality, err = a.UI.GetQuality(models.Quality(a.Settings.DefaultQuality)); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
