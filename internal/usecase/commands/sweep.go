package commands

import (
	"context"
	"log/slog"
	"time"

	"kapkurtar/internal/domain/event"
	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweepResult struct {
	OffersExpired       int
	ReservationsExpired int
}

type SweepCommands interface {
	// SweepExpired transitions offers whose window closed before now, and
	// their still-pending reservations, to expired. Idempotent: a second
	// run against the same state changes nothing and emits nothing.
	SweepExpired(ctx context.Context, now time.Time) (*SweepResult, error)
}

type sweepCommandsImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewSweepCommands(uow shared.UnitOfWork, logger *slog.Logger) SweepCommands {
	return &sweepCommandsImpl{
		uow:    uow,
		logger: logger,
	}
}

func (s *sweepCommandsImpl) SweepExpired(ctx context.Context, now time.Time) (*SweepResult, error) {
	var candidates []uuid.UUID
	err := s.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		candidates, err = s.uow.Reads().ExpiredUnmarkedOfferIDs(ctx, dbtx, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, offerID := range candidates {
		swept, err := s.sweepOffer(ctx, offerID, now)
		if err != nil {
			// One corrupt offer must not block expiry processing for the
			// rest of the batch.
			s.logger.Error("sweep skipped offer",
				"offer_id", offerID.String(),
				"error", err.Error())
			continue
		}
		if swept == nil {
			continue
		}
		result.OffersExpired++
		result.ReservationsExpired += *swept
	}
	return result, nil
}

// sweepOffer expires one offer in its own transaction so the per-offer row
// lock is held briefly and a failure stays contained. Returns nil when
// another sweeper already claimed the offer.
func (s *sweepCommandsImpl) sweepOffer(ctx context.Context, offerID uuid.UUID, now time.Time) (*int, error) {
	var sweptReservations *int

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			return err
		}
		if now.Before(snap.AvailableUntil) || snap.ExpiredAt != nil {
			// Raced with a concurrent sweep or a window edit.
			return nil
		}

		marked, err := tx.Offers().MarkExpired(ctx, tx.DB(), offerID, now)
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}

		pending, err := tx.Reads().PendingReservationsByOfferForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			return err
		}

		count := 0
		for _, res := range pending {
			moved, err := tx.Reservations().TransitionFromPending(ctx, tx.DB(), res.ID, reservation.StatusExpired, now)
			if err != nil {
				return err
			}
			if !moved {
				continue
			}
			// Stock is not restored: the offer is dead regardless.
			if err := tx.Outbox().Append(ctx, tx.DB(),
				event.ReservationExpired(res.ID, res.ClientID, offerID, snap.MerchantID, now)); err != nil {
				return err
			}
			count++
		}

		if err := tx.Outbox().Append(ctx, tx.DB(),
			event.OfferExpired(offerID, snap.MerchantID, now)); err != nil {
			return err
		}

		sweptReservations = &count
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to sweep offer")
	}
	return sweptReservations, nil
}
