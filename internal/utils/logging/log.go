// Package logging sets up the program logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ryt/internal/domain/consts"
	"ryt/internal/domain/regex"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggingConfig configures SetupLogging.
type LoggingConfig struct {
	LogFilePath string
	MaxSizeMB   int
	MaxBackups  int
	Console     io.Writer // nil disables console logging
	Verbose     bool
	Program     string
}

// ProgramLogger is a leveled printf-style wrapper around zerolog.
type ProgramLogger struct {
	zl zerolog.Logger
}

// Nop returns a logger that discards everything.
func Nop() *ProgramLogger {
	return &ProgramLogger{zl: zerolog.Nop()}
}

// SetupLogging creates the rotating log file and returns the program logger.
func SetupLogging(cfg LoggingConfig) (*ProgramLogger, error) {
	if cfg.LogFilePath == "" {
		return nil, fmt.Errorf("no log file path provided")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), consts.PermsConfigDir); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}}

	if cfg.Console != nil && cfg.Verbose {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.Console,
			TimeFormat: time.TimeOnly,
		})
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("program", cfg.Program).
		Logger()

	return &ProgramLogger{zl: zl}, nil
}

// With returns a child logger carrying an extra field.
func (p *ProgramLogger) With(key, value string) *ProgramLogger {
	return &ProgramLogger{zl: p.zl.With().Str(key, value).Logger()}
}

// I logs at info level.
func (p *ProgramLogger) I(format string, args ...any) {
	p.zl.Info().Msg(clean(format, args...))
}

// S logs a success at info level.
func (p *ProgramLogger) S(format string, args ...any) {
	p.zl.Info().Bool("success", true).Msg(clean(format, args...))
}

// W logs at warn level.
func (p *ProgramLogger) W(format string, args ...any) {
	p.zl.Warn().Msg(clean(format, args...))
}

// E logs at error level.
func (p *ProgramLogger) E(format string, args ...any) {
	p.zl.Error().Msg(clean(format, args...))
}

// D logs at debug level.
func (p *ProgramLogger) D(format string, args ...any) {
	p.zl.Debug().Msg(clean(format, args...))
}

// clean formats the message and strips ANSI escape codes.
func clean(format string, args ...any) string {
	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return regex.AnsiEscapeCompile().ReplaceAllString(msg, "")
}
