// Package app wires configuration, history and the downloader into the user-facing commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ryt/internal/config"
	"ryt/internal/database"
	"ryt/internal/domain/consts"
	"ryt/internal/domain/errconsts"
	"ryt/internal/domain/logger"
	"ryt/internal/domain/paths"
	"ryt/internal/downloads"
	"ryt/internal/models"
	"ryt/internal/repo"
	"ryt/internal/ui"
	"ryt/internal/utils/browser"
	"ryt/internal/utils/logging"
)

// Options configure Setup.
type Options struct {
	ConfigFile string // empty uses the per-user default
	YtdlpPath  string // overrides the configured executable for this run
	Verbose    bool

	In         io.Reader
	Out        io.Writer
	LogConsole io.Writer // receives console logs when Verbose
}

// App holds one session's collaborators.
type App struct {
	UI         *ui.UserInterface
	Files      paths.ProgramFiles
	Store      *config.Store
	Settings   *models.Settings
	Downloader *downloads.Downloader
	History    *repo.HistoryStore

	db *database.Database
}

// Setup loads configuration, opens history and builds the downloader.
func Setup(ctx context.Context, opts Options) (*App, error) {
	files := paths.Resolve(opts.ConfigFile)
	u := ui.New(opts.In, opts.Out)

	pl, err := logging.SetupLogging(logging.LoggingConfig{
		LogFilePath: files.LogFile,
		MaxSizeMB:   consts.LogMaxSizeMB,
		MaxBackups:  consts.LogMaxBackups,
		Console:     opts.LogConsole,
		Verbose:     opts.Verbose,
		Program:     consts.ProgramName,
	})
	if err != nil {
		u.Info("Log file was not created: %v", err)
	} else {
		logger.Pl = pl
	}

	store := config.NewStore(files.ConfigFile)
	settings, err := store.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.InitDB(files.HistoryFile)
	if err != nil {
		return nil, err
	}
	history := repo.GetHistoryStore(db.DB)

	// The override applies to this run only and is never saved
	runSettings := *settings
	if opts.YtdlpPath != "" {
		runSettings.YtdlpPath = opts.YtdlpPath
	}

	dl, err := downloads.New(&runSettings,
		downloads.WithOutput(opts.Out),
		downloads.WithRecorder(history),
		downloads.WithCookies(browser.NewCookieExporter("")),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Pl.D("Session set up (config: %q, history: %q)", files.ConfigFile, files.HistoryFile)
	return &App{
		UI:         u,
		Files:      files,
		Store:      store,
		Settings:   settings,
		Downloader: dl,
		History:    history,
		db:         db,
	}, nil
}

// Close releases the history database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// CheckTool verifies yt-dlp once, printing install guidance when it is missing.
func (a *App) CheckTool(ctx context.Context) bool {
	if err := a.Downloader.CheckAvailability(ctx); err != nil {
		a.UI.Error("yt-dlp check failed: %v", err)
		a.UI.Info("Please install yt-dlp: %s", consts.InstallGuideURL)
		return false
	}
	return true
}

// Report turns user-facing errors into messages and returns only fatal errors.
func (a *App) Report(err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, ui.ErrInputClosed):
		return nil

	case errors.Is(err, context.Canceled):
		a.UI.Info("Interrupted")
		return nil

	case errors.Is(err, errconsts.ErrInvalidURL):
		// Already explained where it was detected
		return nil

	case errors.Is(err, errconsts.ErrToolNotFound):
		a.UI.Error("%v", err)
		a.UI.Info("Please install yt-dlp: %s", consts.InstallGuideURL)
		return nil

	case errors.Is(err, errconsts.ErrDownloadFailed):
		a.UI.Error("Download failed: %v", err)
		return nil

	case errors.Is(err, errconsts.ErrInvalidSetting), errors.Is(err, repo.ErrNoEntry):
		a.UI.Error("%v", err)
		return nil
	}

	logger.Pl.E("%v", err)
	return err
}
