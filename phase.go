package mpsm

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	mpsmerrors "github.com/tamirms/mpsm/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runPhase runs fn once per worker index in [0, workers) and waits for all
// of them. Phases never overlap: nothing started here outlives the call.
//
// A panicking worker is converted to an error wrapping ErrWorkerPanic, so
// the whole phase (and the join that owns it) fails without partial
// results. Cancellation is only observed before a worker starts.
func runPhase(ctx context.Context, cfg *config, name string, workers int, fn func(w int) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "%s", name)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Wrapf(mpsmerrors.ErrWorkerPanic, "%s worker %d: %v", name, w, r)
				}
			}()
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			return fn(w)
		})
	}
	err := g.Wait()

	cfg.logger.Debug("phase finished",
		zap.String("phase", name),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	if err != nil {
		return errors.Wrapf(err, "%s", name)
	}
	return nil
}
