package notify

import (
	"context"
	"log/slog"
	"time"

	"kapkurtar/internal/infra/repository"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dispatcher drains the transactional outbox and publishes each event to
// the hub before marking it dispatched. Marking after publish means a crash
// re-publishes rather than drops; subscribers see at-least-once, the outbox
// records exactly-once per transition.
type Dispatcher struct {
	pool     *pgxpool.Pool
	outbox   *repository.OutboxRepository
	hub      *Hub
	clock    clock.Clock
	interval time.Duration
	batch    int32
	logger   *slog.Logger
}

func NewDispatcher(
	pool *pgxpool.Pool,
	hub *Hub,
	clk clock.Clock,
	cfg config.SweepConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		pool:     pool,
		outbox:   repository.NewOutboxRepository(),
		hub:      hub,
		clock:    clk,
		interval: cfg.DispatchInterval,
		batch:    cfg.DispatchBatch,
		logger:   logger,
	}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.DispatchPending(ctx); err != nil {
				d.logger.Error("outbox dispatch failed", "error", err.Error())
			}
		}
	}
}

func (d *Dispatcher) DispatchPending(ctx context.Context) error {
	events, err := d.outbox.PendingEvents(ctx, d.pool, d.batch)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, ev := range events {
		d.hub.Publish(ev)
		ids = append(ids, ev.ID)
	}

	return d.outbox.MarkDispatched(ctx, d.pool, ids, d.clock.Now())
}
