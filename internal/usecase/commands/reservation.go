package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kapkurtar/internal/domain/event"
	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationResult struct {
	ReservationID   uuid.UUID
	OfferID         uuid.UUID
	Quantity        int32
	TotalPriceCents int64
	RemainingStock  int32
}

// CancelOutcome distinguishes a real cancellation (stock reclaimed) from a
// cancellation attempted after the offer's window closed, where the
// reservation expires instead and stock stays with the dead offer. Callers
// surface the two as different messages.
type CancelOutcome string

const (
	CancelOutcomeCancelled    CancelOutcome = "cancelled"
	CancelOutcomeWindowClosed CancelOutcome = "window_closed"
)

type CancelReservationResult struct {
	Outcome CancelOutcome
	Status  reservation.Status
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, offerID, clientID uuid.UUID, quantity int32) (*CreateReservationResult, error)
	CancelReservation(ctx context.Context, reservationID, clientID uuid.UUID) (*CancelReservationResult, error)
	CompleteReservation(ctx context.Context, reservationID, merchantID uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) ReservationCommands {
	return &reservationCommandsImpl{
		uow:    uow,
		clock:  clk,
		logger: logger,
	}
}

func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	offerID, clientID uuid.UUID,
	quantity int32,
) (*CreateReservationResult, error) {
	if quantity < 1 {
		return nil, errs.ErrInvalidQuantity
	}

	now := c.clock.Now()
	var result *CreateReservationResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			return markIfNotFound(err, errs.ErrOfferNotFound)
		}

		off, err := snap.ToDomain()
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		res, err := reservation.NewReservation(off, clientID, quantity, now)
		if err != nil {
			return mapReservationDomainErr(err)
		}

		// The offer row is locked above, so the conditional decrement can
		// only fail here if the reservable predicate itself flipped.
		remaining, ok, err := tx.Offers().DecrementStock(ctx, tx.DB(), offerID, quantity, now)
		if err != nil {
			return err
		}
		if !ok {
			return errs.ErrInsufficientStock
		}

		if err := tx.Reservations().Create(ctx, tx.DB(), res, now); err != nil {
			return err
		}

		if err := tx.Outbox().Append(ctx, tx.DB(),
			event.ReservationConfirmed(res.ID(), clientID, offerID, snap.MerchantID, now)); err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Outbox().Append(ctx, tx.DB(),
				event.StockExhausted(offerID, snap.MerchantID, now)); err != nil {
				return err
			}
		}

		result = &CreateReservationResult{
			ReservationID:   res.ID(),
			OfferID:         offerID,
			Quantity:        quantity,
			TotalPriceCents: res.TotalPriceCents(),
			RemainingStock:  remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) CancelReservation(
	ctx context.Context,
	reservationID, clientID uuid.UUID,
) (*CancelReservationResult, error) {
	now := c.clock.Now()
	var result *CancelReservationResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Peek without a lock to learn the offer id, then lock offer before
		// reservation: same order as the sweeper, so they serialize per
		// offer instead of deadlocking.
		peek, err := tx.Reads().ReservationByID(ctx, tx.DB(), reservationID)
		if err != nil {
			return markIfNotFound(err, errs.ErrReservationNotFound)
		}
		if clientID != uuid.Nil && peek.ClientID != clientID {
			return errs.ErrReservationNotFound
		}

		offSnap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), peek.OfferID)
		if err != nil {
			return markIfNotFound(err, errs.ErrOfferNotFound)
		}

		resSnap, err := tx.Reads().ReservationByIDForUpdate(ctx, tx.DB(), reservationID)
		if err != nil {
			return markIfNotFound(err, errs.ErrReservationNotFound)
		}
		if resSnap.Status != reservation.StatusPending {
			return errs.ErrReservationNotPending
		}

		if !now.Before(offSnap.AvailableUntil) {
			// Window closed: the reservation dies with the offer and stock
			// is not restored to a dead offer.
			if err := c.transition(ctx, tx, reservationID, reservation.StatusExpired, now); err != nil {
				return err
			}
			if err := tx.Outbox().Append(ctx, tx.DB(),
				event.ReservationExpired(reservationID, resSnap.ClientID, offSnap.ID, offSnap.MerchantID, now)); err != nil {
				return err
			}
			result = &CancelReservationResult{
				Outcome: CancelOutcomeWindowClosed,
				Status:  reservation.StatusExpired,
			}
			return nil
		}

		if err := c.transition(ctx, tx, reservationID, reservation.StatusCancelled, now); err != nil {
			return err
		}
		if err := tx.Offers().RestoreStock(ctx, tx.DB(), offSnap.ID, resSnap.Quantity, now); err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, tx.DB(),
			event.ReservationCancelled(reservationID, resSnap.ClientID, offSnap.ID, offSnap.MerchantID, now)); err != nil {
			return err
		}

		result = &CancelReservationResult{
			Outcome: CancelOutcomeCancelled,
			Status:  reservation.StatusCancelled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) CompleteReservation(
	ctx context.Context,
	reservationID, merchantID uuid.UUID,
) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		peek, err := tx.Reads().ReservationByID(ctx, tx.DB(), reservationID)
		if err != nil {
			return markIfNotFound(err, errs.ErrReservationNotFound)
		}

		offSnap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), peek.OfferID)
		if err != nil {
			return markIfNotFound(err, errs.ErrOfferNotFound)
		}
		if merchantID != uuid.Nil && offSnap.MerchantID != merchantID {
			return errs.ErrReservationNotFound
		}

		resSnap, err := tx.Reads().ReservationByIDForUpdate(ctx, tx.DB(), reservationID)
		if err != nil {
			return markIfNotFound(err, errs.ErrReservationNotFound)
		}
		if resSnap.Status != reservation.StatusPending {
			return errs.ErrReservationNotPending
		}

		// Pickup does not alter the ledger; stock was decremented at
		// creation.
		return c.transition(ctx, tx, reservationID, reservation.StatusCompleted, now)
	})
}

func (c *reservationCommandsImpl) transition(
	ctx context.Context,
	tx shared.Tx,
	id uuid.UUID,
	to reservation.Status,
	now time.Time,
) error {
	moved, err := tx.Reservations().TransitionFromPending(ctx, tx.DB(), id, to, now)
	if err != nil {
		return err
	}
	if !moved {
		return errs.ErrReservationNotPending
	}
	return nil
}

func mapReservationDomainErr(err error) error {
	switch {
	case errors.Is(err, reservation.ErrInvalidQuantity):
		return errs.Mark(err, errs.ErrInvalidQuantity)
	case errors.Is(err, reservation.ErrOfferNotReservable):
		return errs.Mark(err, errs.ErrOfferNotReservable)
	case errors.Is(err, reservation.ErrInsufficientStock):
		return errs.Mark(err, errs.ErrInsufficientStock)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
