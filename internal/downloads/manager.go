package downloads

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ryt/internal/domain/logger"
	"ryt/internal/models"

	"golang.org/x/sync/errgroup"
)

// DownloadAll runs requests with at most Settings.MaxConcurrentDownloads in flight.
// A failed download does not stop the others; all failures are joined.
func (d *Downloader) DownloadAll(ctx context.Context, reqs []models.DownloadRequest) error {
	switch len(reqs) {
	case 0:
		return nil
	case 1:
		return d.Download(ctx, reqs[0])
	}

	limit := min(d.Settings.Concurrency(), len(reqs))
	shared := limit > 1
	logger.Pl.I("Downloading %d items, %d at a time", len(reqs), limit)
	fmt.Fprintf(d.out, "Starting %d downloads (%d at a time)...\n", len(reqs), limit)

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(limit)

	for i, req := range reqs {
		req := req
		label := fmt.Sprintf("[%d/%d]", i+1, len(reqs))
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := d.run(ctx, req, d.newIndicator(label, shared)); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", req.URL, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}
