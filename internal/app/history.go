package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ryt/internal/domain/errconsts"
	"ryt/internal/repo"
	"ryt/internal/validation"

	"github.com/araddon/dateparse"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const historyTimeFormat = "2006-01-02 15:04"

// ParseSince parses a --since value: a duration back from now ("24h") or a date in most common formats.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse --since %q: %w", s, err)
	}
	return t, nil
}

// HandleHistory prints recorded downloads.
func (a *App) HandleHistory(ctx context.Context, filter repo.HistoryFilter) error {
	if a.History == nil {
		a.UI.Info("Download history is unavailable")
		return nil
	}

	entries, err := a.History.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.UI.Info("No downloads recorded yet")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "STARTED", "STATUS", "TYPE", "FORMAT", "QUALITY", "URL")
	for _, e := range entries {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.StartedAt.Local().Format(historyTimeFormat),
			e.Status,
			e.ContentType,
			e.Format,
			e.Quality,
			e.URL,
		)
	}
	fmt.Fprintln(a.UI.Out(), t.Render())
	a.UI.Info("Re-download an entry with: ryt history retry <id>")
	return nil
}

// HandleHistoryExport writes the filtered history to path as JSON.
func (a *App) HandleHistoryExport(ctx context.Context, path string, filter repo.HistoryFilter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	n, err := a.History.Export(ctx, f, filter)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close export file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	a.UI.Success("Exported %d entries to %s", n, path)
	return nil
}

// HandleHistoryRetry downloads a recorded request again.
func (a *App) HandleHistoryRetry(ctx context.Context, id int64) error {
	entry, err := a.History.Get(ctx, id)
	if err != nil {
		return err
	}

	req, err := entry.Request()
	if err != nil {
		return fmt.Errorf("history entry %d is not retryable: %w", id, err)
	}
	if !validation.IsValidURL(req.URL) {
		a.UI.Error("Recorded URL is not supported: %s", req.URL)
		return fmt.Errorf("%w: %q", errconsts.ErrInvalidURL, req.URL)
	}

	a.UI.Info("Retrying %s", req.URL)
	return a.Downloader.Download(ctx, req)
}
