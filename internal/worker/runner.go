package worker

import (
	"context"
	"errors"

	"kapkurtar/internal/notify"

	"golang.org/x/sync/errgroup"
)

// Runner owns the background loops: the expiry sweeper and the outbox
// dispatcher. Stop cancels both and waits for them to drain.
type Runner struct {
	sweeper    *Sweeper
	dispatcher *notify.Dispatcher

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewRunner(sweeper *Sweeper, dispatcher *notify.Dispatcher) *Runner {
	return &Runner{
		sweeper:    sweeper,
		dispatcher: dispatcher,
	}
}

func (r *Runner) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r.cancel = cancel

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error { return r.sweeper.Run(gCtx) })
	g.Go(func() error { return r.dispatcher.Run(gCtx) })
	r.group = g
}

func (r *Runner) Stop() error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	err := r.group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
