// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

var (
	progressOnce sync.Once
	Progress     *regexp.Regexp

	ansiOnce   sync.Once
	AnsiEscape *regexp.Regexp
)

// ProgressCompile compiles regex for yt-dlp download percentage lines.
func ProgressCompile() *regexp.Regexp {
	progressOnce.Do(func() {
		Progress = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%`)
	})
	return Progress
}

// AnsiEscapeCompile compiles regex for ANSI escape codes.
func AnsiEscapeCompile() *regexp.Regexp {
	ansiOnce.Do(func() {
		AnsiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	})
	return AnsiEscape
}
