package repository

import (
	"context"
	"time"

	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the command side's minimal snapshot reads, including
// the FOR UPDATE variants that implement the per-offer lock.
type CommandReads struct{}

func NewCommandReads() *CommandReads {
	return &CommandReads{}
}

const offerSnapshotColumns = `
	id, merchant_id, title, description, image_url,
	price_before_cents, price_after_cents, quantity,
	available_from, available_until, is_active,
	latitude, longitude, expired_at, created_at, updated_at`

func (r *CommandReads) OfferByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.OfferSnapshot, error) {
	query := `SELECT` + offerSnapshotColumns + `
		FROM offers WHERE id = $1 FOR UPDATE`
	return r.scanOffer(ctx, dbtx, query, id)
}

func (r *CommandReads) scanOffer(ctx context.Context, dbtx db.DBTX, query string, id uuid.UUID) (*shared.OfferSnapshot, error) {
	var snap shared.OfferSnapshot
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.MerchantID, &snap.Title, &snap.Description, &snap.ImageURL,
		&snap.PriceBeforeCents, &snap.PriceAfterCents, &snap.Quantity,
		&snap.AvailableFrom, &snap.AvailableUntil, &snap.IsActive,
		&snap.Latitude, &snap.Longitude, &snap.ExpiredAt, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "offer not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read offer", err)
	}
	return &snap, nil
}

const reservationSnapshotColumns = `
	id, offer_id, client_id, quantity, total_price_cents, status, created_at, updated_at`

func (r *CommandReads) ReservationByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	query := `SELECT` + reservationSnapshotColumns + `
		FROM reservations WHERE id = $1`
	return r.scanReservation(ctx, dbtx, query, id)
}

func (r *CommandReads) ReservationByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	query := `SELECT` + reservationSnapshotColumns + `
		FROM reservations WHERE id = $1 FOR UPDATE`
	return r.scanReservation(ctx, dbtx, query, id)
}

func (r *CommandReads) scanReservation(ctx context.Context, dbtx db.DBTX, query string, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		snap   shared.ReservationSnapshot
		status string
	)
	err := dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.OfferID, &snap.ClientID,
		&snap.Quantity, &snap.TotalPriceCents, &status,
		&snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservation", err)
	}
	snap.Status = reservation.Status(status)
	return &snap, nil
}

func (r *CommandReads) PendingReservationsByOfferForUpdate(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID) ([]*shared.ReservationSnapshot, error) {
	query := `SELECT` + reservationSnapshotColumns + `
		FROM reservations
		WHERE offer_id = $1 AND status = 'pending'
		ORDER BY created_at
		FOR UPDATE`

	rows, err := dbtx.Query(ctx, query, offerID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list pending reservations", err)
	}
	defer rows.Close()

	var snaps []*shared.ReservationSnapshot
	for rows.Next() {
		var (
			snap   shared.ReservationSnapshot
			status string
		)
		if err := rows.Scan(
			&snap.ID, &snap.OfferID, &snap.ClientID,
			&snap.Quantity, &snap.TotalPriceCents, &status,
			&snap.CreatedAt, &snap.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
		}
		snap.Status = reservation.Status(status)
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate reservations", err)
	}
	return snaps, nil
}

func (r *CommandReads) ExpiredUnmarkedOfferIDs(ctx context.Context, dbtx db.DBTX, now time.Time) ([]uuid.UUID, error) {
	const query = `
		SELECT id FROM offers
		WHERE available_until <= $1 AND expired_at IS NULL
		ORDER BY available_until`

	rows, err := dbtx.Query(ctx, query, now)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list expired offers", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan offer id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate offer ids", err)
	}
	return ids, nil
}
