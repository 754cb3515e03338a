package app

import (
	"context"
	"time"

	"ryt/internal/repo"
	"ryt/internal/ui"
)

const (
	interactiveHistoryLimit = 20

	// interruptGrace is how long a cancelled session waits for a running download to settle
	interruptGrace = 2 * time.Second
)

// RunInteractive drives the menu loop until the user exits or ctx is cancelled.
//
// Prompts block on input, so the loop runs in its own goroutine and is abandoned on cancellation.
func (a *App) RunInteractive(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- a.menuLoop(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(interruptGrace):
		}
		return ctx.Err()
	}
}

// menuLoop is the interactive session itself.
func (a *App) menuLoop(ctx context.Context) error {
	a.UI.Welcome()

	for {
		action, err := a.UI.GetMainAction()
		if err != nil {
			return err
		}

		switch action {
		case ui.ActionDownload:
			url, err := a.UI.GetURL()
			if err != nil {
				return err
			}
			if err := a.HandleDownload(ctx, []string{url}, DownloadOptions{}); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if fatal := a.Report(err); fatal != nil {
					return fatal
				}
				continue
			}

		case ui.ActionConfig:
			a.HandleConfigShow()

		case ui.ActionHistory:
			if err := a.HandleHistory(ctx, repo.HistoryFilter{Limit: interactiveHistoryLimit}); err != nil {
				return err
			}

		case ui.ActionExit:
			a.UI.Goodbye()
			return nil
		}

		more, err := a.UI.ContinuePrompt()
		if err != nil {
			return err
		}
		if !more {
			a.UI.Goodbye()
			return nil
		}
	}
}
