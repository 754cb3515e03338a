// Package ui collects user choices through numbered menus and prints styled messages.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ryt/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// ErrInputClosed is returned when input ends before an answer is given.
var ErrInputClosed = fmt.Errorf("input closed: %w", io.EOF)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	promptStyle  = lipgloss.NewStyle().Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// MainAction is a choice from the main menu.
type MainAction int

const (
	ActionDownload MainAction = iota
	ActionConfig
	ActionHistory
	ActionExit
)

// UserInterface reads answers from in and writes prompts to out.
type UserInterface struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a UserInterface over in and out.
func New(in io.Reader, out io.Writer) *UserInterface {
	return &UserInterface{in: bufio.NewReader(in), out: out}
}

// Out returns the writer messages go to.
func (u *UserInterface) Out() io.Writer {
	return u.out
}

// Welcome prints the interactive banner.
func (u *UserInterface) Welcome() {
	fmt.Fprintln(u.out, titleStyle.Render("Welcome to ryt - Your Media Downloader"))
	fmt.Fprintln(u.out, dimStyle.Render("Built on yt-dlp for reliable downloads"))
	fmt.Fprintln(u.out)
}

// Goodbye prints the farewell line.
func (u *UserInterface) Goodbye() {
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, successStyle.Render("Thanks for using ryt!"))
}

// Info prints an informational message.
func (u *UserInterface) Info(format string, args ...any) {
	fmt.Fprintln(u.out, infoStyle.Render("ℹ"), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (u *UserInterface) Error(format string, args ...any) {
	fmt.Fprintln(u.out, errorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (u *UserInterface) Success(format string, args ...any) {
	fmt.Fprintln(u.out, successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Select shows a numbered menu and returns the chosen index.
// Blank input picks def; anything else invalid asks again.
func (u *UserInterface) Select(prompt string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("no options to select from")
	}
	if def < 0 || def >= len(options) {
		def = 0
	}

	for {
		fmt.Fprintln(u.out, promptStyle.Render(prompt))
		for i, opt := range options {
			marker := " "
			if i == def {
				marker = ">"
			}
			fmt.Fprintf(u.out, " %s %d) %s\n", marker, i+1, opt)
		}
		fmt.Fprintf(u.out, "Choice [%d]: ", def+1)

		answer, err := u.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		u.Error("Please enter a number between 1 and %d", len(options))
	}
}

// Input asks for a non-empty line of text.
func (u *UserInterface) Input(prompt string) (string, error) {
	for {
		fmt.Fprintf(u.out, "%s: ", promptStyle.Render(prompt))
		answer, err := u.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// Confirm asks a yes/no question. Blank input picks def.
func (u *UserInterface) Confirm(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(u.out, "%s [%s]: ", promptStyle.Render(prompt), hint)
		answer, err := u.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		u.Error("Please answer y or n")
	}
}

// readLine returns the next trimmed line, or ErrInputClosed.
func (u *UserInterface) readLine() (string, error) {
	line, err := u.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line = strings.TrimSpace(line); line != "" {
				return line, nil
			}
			fmt.Fprintln(u.out)
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// GetMainAction shows the main menu.
func (u *UserInterface) GetMainAction() (MainAction, error) {
	i, err := u.Select("What would you like to do?", []string{
		"Download media",
		"Configure settings",
		"View history",
		"Exit",
	}, 0)
	return MainAction(i), err
}

// GetURL asks for the URL to download.
func (u *UserInterface) GetURL() (string, error) {
	return u.Input("Enter the URL to download")
}

// GetContentType asks for single item or playlist.
func (u *UserInterface) GetContentType() (models.ContentType, error) {
	i, err := u.Select("What would you like to download?", []string{
		"Single video/audio",
		"Entire playlist",
	}, 0)
	if err != nil {
		return "", err
	}
	return []models.ContentType{models.ContentSingle, models.ContentPlaylist}[i], nil
}

// GetFormat asks for video or audio, defaulting to def.
func (u *UserInterface) GetFormat(def models.Format) (models.Format, error) {
	formats := []models.Format{models.FormatVideo, models.FormatAudio}
	defIdx := 0
	if def == models.FormatAudio {
		defIdx = 1
	}
	i, err := u.Select("Choose format", []string{
		"Video (with audio)",
		"Audio only",
	}, defIdx)
	if err != nil {
		return "", err
	}
	return formats[i], nil
}

// qualityLabels are the menu labels, aligned with models.Qualities.
var qualityLabels = map[models.Quality]string{
	models.Quality480p:  "480p",
	models.Quality720p:  "720p",
	models.Quality1080p: "1080p",
	models.Quality1440p: "1440p (2K)",
	models.Quality2160p: "2160p (4K)",
	models.QualityBest:  "Best available",
}

// GetQuality asks for a video quality, defaulting to def.
func (u *UserInterface) GetQuality(def models.Quality) (models.Quality, error) {
	options := make([]string, len(models.Qualities))
	defIdx := 2
	for i, q := range models.Qualities {
		options[i] = qualityLabels[q]
		if q == def {
			defIdx = i
		}
	}
	i, err := u.Select("Select video quality", options, defIdx)
	if err != nil {
		return "", err
	}
	return models.Qualities[i], nil
}

// ContinuePrompt asks whether to keep going.
func (u *UserInterface) ContinuePrompt() (bool, error) {
	fmt.Fprintln(u.out)
	return u.Confirm("Would you like to download something else?", true)
}
