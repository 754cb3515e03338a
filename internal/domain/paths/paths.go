// Package paths resolves ryt's per-user file locations.
package paths

import (
	"os"
	"path/filepath"

	"ryt/internal/domain/consts"

	"github.com/adrg/xdg"
)

// ProgramFiles holds the files ryt keeps next to its config.
type ProgramFiles struct {
	ConfigFile  string
	HistoryFile string
	LogFile     string
}

// DefaultConfigFile returns <user config dir>/ryt/config.toml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, consts.ProgramName, consts.ConfigFile)
}

// Resolve returns program files for a config file path. Empty uses the default.
func Resolve(configFile string) ProgramFiles {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}
	dir := filepath.Dir(configFile)
	return ProgramFiles{
		ConfigFile:  configFile,
		HistoryFile: filepath.Join(dir, consts.HistoryFile),
		LogFile:     filepath.Join(dir, consts.LogFile),
	}
}

// DefaultDownloadDir returns documents/ryt, else home/ryt, else ./ryt.
func DefaultDownloadDir() string {
	if xdg.UserDirs.Documents != "" {
		return filepath.Join(xdg.UserDirs.Documents, consts.ProgramName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, consts.ProgramName)
	}
	return filepath.Join(".", consts.ProgramName)
}
