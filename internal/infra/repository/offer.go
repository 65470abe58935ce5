package repository

import (
	"context"
	"time"

	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(ctx context.Context, dbtx db.DBTX, snap *shared.OfferSnapshot) error {
	const query = `
		INSERT INTO offers (
			id, merchant_id, title, description, image_url,
			price_before_cents, price_after_cents, quantity,
			available_from, available_until, is_active,
			latitude, longitude, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := dbtx.Exec(ctx, query,
		snap.ID, snap.MerchantID, snap.Title, snap.Description, snap.ImageURL,
		snap.PriceBeforeCents, snap.PriceAfterCents, snap.Quantity,
		snap.AvailableFrom, snap.AvailableUntil, snap.IsActive,
		snap.Latitude, snap.Longitude, snap.CreatedAt, snap.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) UpdateListing(ctx context.Context, dbtx db.DBTX, snap *shared.OfferSnapshot) error {
	const query = `
		UPDATE offers SET
			title = $2, description = $3, image_url = $4,
			price_before_cents = $5, price_after_cents = $6, quantity = $7,
			available_from = $8, available_until = $9, is_active = $10,
			updated_at = $11
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		snap.ID, snap.Title, snap.Description, snap.ImageURL,
		snap.PriceBeforeCents, snap.PriceAfterCents, snap.Quantity,
		snap.AvailableFrom, snap.AvailableUntil, snap.IsActive,
		snap.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update offer", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	return nil
}

// DecrementStock is conditioned on the still-current row state: the
// decrement only happens while the offer is reservable and the stock covers
// qty. Concurrent attempts against the same offer can therefore never
// oversell, with or without the caller's row lock.
func (r *OfferRepository) DecrementStock(
	ctx context.Context,
	dbtx db.DBTX,
	offerID uuid.UUID,
	qty int32,
	now time.Time,
) (int32, bool, error) {
	const query = `
		UPDATE offers
		SET quantity = quantity - $2, updated_at = $3
		WHERE id = $1
		  AND is_active
		  AND expired_at IS NULL
		  AND quantity >= $2
		  AND available_from <= $3
		  AND available_until > $3
		RETURNING quantity`

	var remaining int32
	err := dbtx.QueryRow(ctx, query, offerID, qty, now).Scan(&remaining)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, infra.WrapRepoErr(infra.KindDBFailure, "failed to decrement stock", err)
	}
	return remaining, true, nil
}

func (r *OfferRepository) RestoreStock(
	ctx context.Context,
	dbtx db.DBTX,
	offerID uuid.UUID,
	qty int32,
	now time.Time,
) error {
	const query = `
		UPDATE offers
		SET quantity = quantity + $2, updated_at = $3
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, offerID, qty, now)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to restore stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	return nil
}

func (r *OfferRepository) MarkExpired(
	ctx context.Context,
	dbtx db.DBTX,
	offerID uuid.UUID,
	now time.Time,
) (bool, error) {
	const query = `
		UPDATE offers
		SET expired_at = $2, updated_at = $2
		WHERE id = $1
		  AND expired_at IS NULL
		  AND available_until <= $2`

	tag, err := dbtx.Exec(ctx, query, offerID, now)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to mark offer expired", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OfferRepository) SetActive(
	ctx context.Context,
	dbtx db.DBTX,
	offerID uuid.UUID,
	active bool,
	now time.Time,
) error {
	const query = `UPDATE offers SET is_active = $2, updated_at = $3 WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, offerID, active, now)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to set offer active flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	return nil
}
