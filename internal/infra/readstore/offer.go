package readstore

import (
	"context"

	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OfferReadStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewOfferReadStore(pool *pgxpool.Pool, clk clock.Clock) *OfferReadStore {
	return &OfferReadStore{
		pool:  pool,
		clock: clk,
	}
}

const offerJoinColumns = `
	o.id, o.title, o.description, o.image_url,
	o.price_before_cents, o.price_after_cents, o.quantity,
	o.available_from, o.available_until, o.is_active,
	o.latitude, o.longitude, o.expired_at, o.created_at, o.updated_at,
	m.id, m.business_name, m.logo_url, m.street, m.city, m.postal_code,
	m.phone, m.latitude, m.longitude`

// ReservableOffers applies the reservable predicate in SQL; distance and
// countdown annotation happen in the discovery usecase. The result may be
// slightly stale by the time a client reserves, which CreateReservation
// absorbs by rejecting rather than overselling.
func (s *OfferReadStore) ReservableOffers(ctx context.Context) ([]*queries.OfferCandidate, error) {
	query := `
		SELECT` + offerJoinColumns + `
		FROM offers o
		JOIN merchants m ON m.id = o.merchant_id
		WHERE o.is_active
		  AND o.expired_at IS NULL
		  AND o.quantity > 0
		  AND o.available_from <= $1
		  AND o.available_until > $1`

	rows, err := s.pool.Query(ctx, query, s.clock.Now())
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservable offers", err)
	}
	defer rows.Close()

	var candidates []*queries.OfferCandidate
	for rows.Next() {
		detail, err := scanOfferDetail(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, &queries.OfferCandidate{
			ID:               detail.ID,
			Merchant:         detail.Merchant,
			Title:            detail.Title,
			Description:      detail.Description,
			ImageURL:         detail.ImageURL,
			PriceBeforeCents: detail.PriceBeforeCents,
			PriceAfterCents:  detail.PriceAfterCents,
			Quantity:         detail.Quantity,
			AvailableFrom:    detail.AvailableFrom,
			AvailableUntil:   detail.AvailableUntil,
			Latitude:         detail.Latitude,
			Longitude:        detail.Longitude,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate reservable offers", err)
	}
	return candidates, nil
}

func (s *OfferReadStore) OfferByID(ctx context.Context, id uuid.UUID) (*queries.OfferDetailRow, error) {
	query := `
		SELECT` + offerJoinColumns + `
		FROM offers o
		JOIN merchants m ON m.id = o.merchant_id
		WHERE o.id = $1`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query offer", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query offer", err)
		}
		return nil, infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	return scanOfferDetail(rows)
}

func (s *OfferReadStore) OffersByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*queries.OfferDetailRow, error) {
	query := `
		SELECT` + offerJoinColumns + `
		FROM offers o
		JOIN merchants m ON m.id = o.merchant_id
		WHERE o.merchant_id = $1
		ORDER BY o.created_at DESC`

	rows, err := s.pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query merchant offers", err)
	}
	defer rows.Close()

	var details []*queries.OfferDetailRow
	for rows.Next() {
		detail, err := scanOfferDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate merchant offers", err)
	}
	return details, nil
}

func scanOfferDetail(row pgx.Rows) (*queries.OfferDetailRow, error) {
	var d queries.OfferDetailRow
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.ImageURL,
		&d.PriceBeforeCents, &d.PriceAfterCents, &d.Quantity,
		&d.AvailableFrom, &d.AvailableUntil, &d.IsActive,
		&d.Latitude, &d.Longitude, &d.ExpiredAt, &d.CreatedAt, &d.UpdatedAt,
		&d.Merchant.ID, &d.Merchant.BusinessName, &d.Merchant.LogoURL,
		&d.Merchant.Street, &d.Merchant.City, &d.Merchant.PostalCode,
		&d.Merchant.Phone, &d.Merchant.Latitude, &d.Merchant.Longitude,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan offer row", err)
	}
	return &d, nil
}

var (
	_ queries.DiscoveryReadStore = (*OfferReadStore)(nil)
	_ queries.OfferReadStore     = (*OfferReadStore)(nil)
	_ db.DBTX                    = (*pgxpool.Pool)(nil)
)
