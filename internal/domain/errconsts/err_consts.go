// Package errconsts holds sentinel errors and constant error messages.
package errconsts

import "errors"

// Sentinels
var (
	ErrToolNotFound   = errors.New("yt-dlp is not installed or not found in PATH")
	ErrDownloadFailed = errors.New("download failed")
	ErrInvalidURL     = errors.New("invalid URL format or unsupported platform")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Programs
const (
	YTDLPFailure = "yt-dlp exited with code %d: %w"
)

// File
const (
	ConfigParseFail = "config file %q could not be parsed, using defaults: %v"
	ConfigValueFail = "config file %q: %s %q is invalid, using default %q: %v"
)
