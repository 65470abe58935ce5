package worker

import (
	"context"
	"log/slog"
	"time"

	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/usecase/commands"
)

// Sweeper periodically transitions expired offers and their pending
// reservations. The sweep itself is idempotent, so overlapping runs across
// replicas are harmless.
type Sweeper struct {
	sweep    commands.SweepCommands
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(sweep commands.SweepCommands, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			result, err := s.sweep.SweepExpired(ctx, s.clock.Now())
			if err != nil {
				s.logger.Error("expiry sweep failed", "error", err.Error())
				continue
			}
			if result.OffersExpired > 0 || result.ReservationsExpired > 0 {
				s.logger.Info("expiry sweep completed",
					"offers_expired", result.OffersExpired,
					"reservations_expired", result.ReservationsExpired)
			}
		}
	}
}
