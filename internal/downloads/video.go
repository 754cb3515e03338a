package downloads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"ryt/internal/domain/command"
	"ryt/internal/domain/errconsts"
	"ryt/internal/domain/logger"
	"ryt/internal/models"
	"ryt/internal/progress"
	"ryt/internal/utils/logging"

	"github.com/alessio/shellescape"
	"github.com/google/uuid"
)

const (
	lineChanSize  = 100
	maxLineSize   = 1024 * 1024
	stderrTailLen = 5
)

// Download runs one request to completion, rendering progress as it goes.
func (d *Downloader) Download(ctx context.Context, req models.DownloadRequest) error {
	fmt.Fprintln(d.out, "Starting download...")
	return d.run(ctx, req, d.newIndicator("", false))
}

// run records, builds and executes one download.
func (d *Downloader) run(ctx context.Context, req models.DownloadRequest, ind progress.Indicator) (err error) {
	runID := uuid.NewString()
	pl := logger.Pl.With("download_id", runID)
	pl.I("Downloading %q (type: %s, format: %s, quality: %q)", req.URL, req.ContentType, req.Format, req.QualityString())

	if d.recorder != nil {
		id, recErr := d.recorder.RecordStart(ctx, runID, req)
		if recErr != nil {
			pl.W("Could not record download start: %v", recErr)
		} else {
			defer func() {
				if recErr := d.recorder.RecordFinish(context.WithoutCancel(ctx), id, err); recErr != nil {
					pl.W("Could not record download result: %v", recErr)
				}
			}()
		}
	}

	var cookieFile string
	if d.cookies != nil && d.Settings.BrowserCookies {
		path, cleanup, cookieErr := d.cookies.ExportCookies(ctx, req.URL)
		defer cleanup()
		if cookieErr != nil {
			pl.W("Continuing without browser cookies: %v", cookieErr)
		} else {
			cookieFile = path
		}
	}

	args := BuildArgs(d.Settings.DownloadDir, req, cookieFile)
	cmd := exec.CommandContext(ctx, d.toolCmd, args...)
	configureProcess(cmd)
	pl.D("Built download command: %s", shellescape.QuoteCommand(append([]string{d.toolCmd}, args...)))

	if err = d.execute(ctx, cmd, ind, pl); err != nil {
		ind.Finish(false, "Download failed!")
		pl.E("Download of %q failed: %v", req.URL, err)
		return err
	}

	ind.Finish(true, "Download completed successfully!")
	pl.S("Downloaded %q", req.URL)
	return nil
}

// execute starts cmd, streams its stdout into ind and waits for exit.
func (d *Downloader) execute(ctx context.Context, cmd *exec.Cmd, ind progress.Indicator, pl *logging.ProgramLogger) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", errconsts.ErrToolNotFound, err)
	}

	// Children that outlive yt-dlp keep the pipes open; closing them ends the readers
	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go func() {
		select {
		case <-ctx.Done():
			stdout.Close()
			stderr.Close()
		case <-stopWatch:
		}
	}()

	lineChan := make(chan string, lineChanSize)
	readErr := make(chan error, 1)
	go func() {
		defer close(lineChan)
		readErr <- scanLines(stdout, func(line string) {
			lineChan <- line
		})
	}()

	// Drained so a chatty child never blocks on a full stderr pipe
	tail := make([]string, 0, stderrTailLen)
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		if err := scanLines(stderr, func(line string) {
			pl.D("yt-dlp stderr: %s", line)
			if len(tail) == stderrTailLen {
				tail = tail[1:]
			}
			tail = append(tail, line)
		}); err != nil {
			pl.W("Failed reading yt-dlp stderr: %v", err)
		}
	}()

	for line := range lineChan {
		handleLine(line, ind, pl)
	}
	<-stderrDone
	scanErr := <-readErr

	waitErr := cmd.Wait()
	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("download interrupted: %w", ctx.Err())

	case waitErr != nil:
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return fmt.Errorf("failed waiting for yt-dlp: %w", waitErr)
		}
		err := fmt.Errorf(errconsts.YTDLPFailure, exitErr.ExitCode(), errconsts.ErrDownloadFailed)
		if len(tail) > 0 {
			err = fmt.Errorf("%w (%s)", err, tail[len(tail)-1])
		}
		return err

	case scanErr != nil:
		return fmt.Errorf("failed reading yt-dlp output: %w", scanErr)
	}
	return nil
}

// handleLine applies one stdout line to the indicator.
func handleLine(line string, ind progress.Indicator, pl *logging.ProgramLogger) {
	if line == "" {
		return
	}
	pl.D("yt-dlp: %s", line)

	if sample, ok := ParseProgress(line); ok {
		ind.Update(sample)
		return
	}
	if strings.Contains(line, command.DownloadTag) {
		ind.SetStatus(ExtractStatus(line))
	}
}

// scanLines calls fn for each line of r. After a scan error the rest of r is
// discarded so the writer is not blocked.
func scanLines(r io.Reader, fn func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}
