package repository

import (
	"context"
	"errors"
	"time"

	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(
	ctx context.Context,
	dbtx db.DBTX,
	res *reservation.Reservation,
	now time.Time,
) error {
	const query = `
		INSERT INTO reservations (
			id, offer_id, client_id, quantity, total_price_cents,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := dbtx.Exec(ctx, query,
		res.ID(), res.OfferID(), res.ClientID(),
		res.Quantity(), res.TotalPriceCents(),
		res.Status().String(), now,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create reservation", err)
	}
	return nil
}

// TransitionFromPending is conditioned on the pending status so that two
// racing transitions can never both claim the same reservation.
func (r *ReservationRepository) TransitionFromPending(
	ctx context.Context,
	dbtx db.DBTX,
	id uuid.UUID,
	to reservation.Status,
	now time.Time,
) (bool, error) {
	const query = `
		UPDATE reservations
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := dbtx.Exec(ctx, query, id, to.String(), now)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to transition reservation", err)
	}
	return tag.RowsAffected() > 0, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
