// Package config loads, saves and applies ryt settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ryt/internal/domain/consts"
	"ryt/internal/domain/errconsts"
	"ryt/internal/domain/logger"
	"ryt/internal/domain/paths"
	"ryt/internal/models"

	"github.com/BurntSushi/toml"
)

// Setting keys accepted by Set, in display order.
const (
	KeyDownloadDir    = "download_dir"
	KeyDefaultQuality = "default_quality"
	KeyDefaultFormat  = "default_format"
	KeyYtdlpPath      = "ytdlp_path"
	KeyMaxConcurrent  = "max_concurrent_downloads"
	KeyBrowserCookies = "browser_cookies"
)

// Keys lists every settable key.
var Keys = []string{
	KeyDownloadDir,
	KeyDefaultQuality,
	KeyDefaultFormat,
	KeyYtdlpPath,
	KeyMaxConcurrent,
	KeyBrowserCookies,
}

// Store reads and writes the settings file.
type Store struct {
	Path string
}

// NewStore returns a store for path, or the default config file when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = paths.DefaultConfigFile()
	}
	return &Store{Path: path}
}

// Default returns the first-run settings.
func Default() *models.Settings {
	return &models.Settings{
		DownloadDir:            paths.DefaultDownloadDir(),
		DefaultQuality:         consts.DefaultQuality,
		DefaultFormat:          consts.DefaultFormat,
		MaxConcurrentDownloads: consts.DefaultMaxConcurrent,
	}
}

// LoadOrCreate reads the settings file, writing defaults when it does not exist.
//
// A file that cannot be parsed yields defaults without an error; the parse failure
// only reaches the log.
func (s *Store) LoadOrCreate() (*models.Settings, error) {
	info, err := os.Stat(s.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		settings := Default()
		if err := s.Save(settings); err != nil {
			return nil, err
		}
		logger.Pl.I("Created default config at %q", s.Path)
		return settings, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("config file %q is a directory, should be file", s.Path)
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := Default()
	if _, err := toml.Decode(string(content), settings); err != nil {
		logger.Pl.W(errconsts.ConfigParseFail, s.Path, err)
		return Default(), nil
	}
	s.sanitize(settings)
	return settings, nil
}

// sanitize resets each invalid value to its default, normalizing the valid ones.
func (s *Store) sanitize(settings *models.Settings) {
	def := Default()

	if q, err := models.ParseQuality(settings.DefaultQuality); err != nil {
		logger.Pl.W(errconsts.ConfigValueFail, s.Path, KeyDefaultQuality, settings.DefaultQuality, def.DefaultQuality, err)
		settings.DefaultQuality = def.DefaultQuality
	} else {
		settings.DefaultQuality = string(q)
	}

	if f, err := models.ParseFormat(settings.DefaultFormat); err != nil {
		logger.Pl.W(errconsts.ConfigValueFail, s.Path, KeyDefaultFormat, settings.DefaultFormat, def.DefaultFormat, err)
		settings.DefaultFormat = def.DefaultFormat
	} else {
		settings.DefaultFormat = string(f)
	}

	if settings.MaxConcurrentDownloads < 1 {
		logger.Pl.W(errconsts.ConfigValueFail, s.Path, KeyMaxConcurrent, strconv.Itoa(settings.MaxConcurrentDownloads),
			strconv.Itoa(def.MaxConcurrentDownloads), "must be at least 1")
		settings.MaxConcurrentDownloads = def.MaxConcurrentDownloads
	}

	if strings.TrimSpace(settings.DownloadDir) == "" {
		logger.Pl.W(errconsts.ConfigValueFail, s.Path, KeyDownloadDir, settings.DownloadDir, def.DownloadDir, "cannot be empty")
		settings.DownloadDir = def.DownloadDir
	}
}

// Save writes settings, creating parent directories as needed.
func (s *Store) Save(settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), consts.PermsConfigDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(s.Path, buf.Bytes(), consts.PermsConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnsureDownloadDirs creates the download root and its fixed subdirectories.
func EnsureDownloadDirs(settings *models.Settings) error {
	for _, dir := range []string{
		settings.DownloadDir,
		filepath.Join(settings.DownloadDir, consts.SingleVideosDir),
		filepath.Join(settings.DownloadDir, consts.PlaylistsDir),
	} {
		if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
			return fmt.Errorf("failed to create download directory %q: %w", dir, err)
		}
	}
	return nil
}

// Set validates value and applies it to key.
func Set(settings *models.Settings, key, value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case KeyDownloadDir:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", errconsts.ErrInvalidSetting, key)
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return fmt.Errorf("%w: %v", errconsts.ErrInvalidSetting, err)
		}
		settings.DownloadDir = abs

	case KeyDefaultQuality:
		q, err := models.ParseQuality(value)
		if err != nil {
			return fmt.Errorf("%w: %v", errconsts.ErrInvalidSetting, err)
		}
		settings.DefaultQuality = string(q)

	case KeyDefaultFormat:
		f, err := models.ParseFormat(value)
		if err != nil {
			return fmt.Errorf("%w: %v", errconsts.ErrInvalidSetting, err)
		}
		settings.DefaultFormat = string(f)

	case KeyYtdlpPath:
		settings.YtdlpPath = value

	case KeyMaxConcurrent:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", errconsts.ErrInvalidSetting, key, value)
		}
		settings.MaxConcurrentDownloads = n

	case KeyBrowserCookies:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", errconsts.ErrInvalidSetting, key, value)
		}
		settings.BrowserCookies = b

	default:
		return fmt.Errorf("%w: unknown key %q (valid keys: %s)", errconsts.ErrInvalidSetting, key, strings.Join(Keys, ", "))
	}
	return nil
}

// Values returns each setting as a display string, keyed like the config file.
func Values(settings *models.Settings) map[string]string {
	ytdlp := settings.YtdlpPath
	if ytdlp == "" {
		ytdlp = "(yt-dlp from PATH)"
	}
	return map[string]string{
		KeyDownloadDir:    settings.DownloadDir,
		KeyDefaultQuality: settings.DefaultQuality,
		KeyDefaultFormat:  settings.DefaultFormat,
		KeyYtdlpPath:      ytdlp,
		KeyMaxConcurrent:  strconv.Itoa(settings.MaxConcurrentDownloads),
		KeyBrowserCookies: strconv.FormatBool(settings.BrowserCookies),
	}
}
