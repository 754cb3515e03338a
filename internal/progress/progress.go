// Package progress renders download progress in the terminal.
package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"ryt/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth     = 40
	maxStatusLen = 60
)

var (
	statusStyle  = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// Serializes writes from indicators sharing one terminal.
	outMu sync.Mutex
)

// Indicator receives progress for one download.
type Indicator interface {
	// Update replaces the current sample. Last value wins.
	Update(sample models.ProgressSample)
	// SetStatus replaces only the status text.
	SetStatus(status string)
	// Finish ends the indicator.
	Finish(success bool, msg string)
}

// Bar redraws a single terminal line with a progress bar.
type Bar struct {
	out    io.Writer
	model  progress.Model
	label  string
	start  time.Time
	sample models.ProgressSample
}

// NewBar returns a bar writing to out.
func NewBar(out io.Writer, label string) *Bar {
	return &Bar{
		out: out,
		model: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		label: label,
		start: time.Now(),
	}
}

// Update implements Indicator.
func (b *Bar) Update(sample models.ProgressSample) {
	b.sample = sample
	b.render()
}

// SetStatus implements Indicator.
func (b *Bar) SetStatus(status string) {
	b.sample.Status = status
	b.render()
}

// Sample returns the last sample shown.
func (b *Bar) Sample() models.ProgressSample {
	return b.sample
}

// Finish implements Indicator.
func (b *Bar) Finish(success bool, msg string) {
	b.render()
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(b.out, "\n%s\n", finishStyle(success).Render(msg))
}

func (b *Bar) render() {
	elapsed := time.Since(b.start).Truncate(time.Second)

	var sb strings.Builder
	sb.WriteString("\r\033[K")
	if b.label != "" {
		sb.WriteString(labelStyle.Render(b.label))
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "[%s] %s %5.1f%% %s",
		elapsed,
		b.model.ViewAs(b.sample.Percent/100),
		b.sample.Percent,
		statusStyle.Render(truncate(b.sample.Status, maxStatusLen)))

	outMu.Lock()
	defer outMu.Unlock()
	io.WriteString(b.out, sb.String())
}

// Lines prints one line per ten percent of progress. Used when several downloads share the terminal.
type Lines struct {
	out    io.Writer
	label  string
	step   int
	sample models.ProgressSample
}

// NewLines returns a line indicator writing to out.
func NewLines(out io.Writer, label string) *Lines {
	return &Lines{out: out, label: label, step: -1}
}

// Update implements Indicator.
func (l *Lines) Update(sample models.ProgressSample) {
	l.sample = sample
	step := int(math.Floor(sample.Percent / 10))
	if step == l.step {
		return
	}
	l.step = step
	l.println(fmt.Sprintf("%5.1f%% %s", sample.Percent, truncate(sample.Status, maxStatusLen)))
}

// SetStatus implements Indicator.
func (l *Lines) SetStatus(status string) {
	l.sample.Status = status
}

// Sample returns the last sample received.
func (l *Lines) Sample() models.ProgressSample {
	return l.sample
}

// Finish implements Indicator.
func (l *Lines) Finish(success bool, msg string) {
	l.println(finishStyle(success).Render(msg))
}

func (l *Lines) println(msg string) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", labelStyle.Render(l.label), msg)
}

func finishStyle(success bool) lipgloss.Style {
	if success {
		return successStyle
	}
	return failureStyle
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
