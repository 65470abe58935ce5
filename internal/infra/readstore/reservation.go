package readstore

import (
	"context"

	"kapkurtar/internal/infra"
	"kapkurtar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

const reservationViewQuery = `
	SELECT r.id, r.offer_id, o.title, o.merchant_id, m.business_name,
	       r.client_id, r.quantity, r.total_price_cents, r.status,
	       r.created_at, r.updated_at
	FROM reservations r
	JOIN offers o ON o.id = r.offer_id
	JOIN merchants m ON m.id = o.merchant_id`

func (s *ReservationReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	rows, err := s.pool.Query(ctx, reservationViewQuery+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservation", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservation", err)
		}
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return scanReservationView(rows)
}

func (s *ReservationReadStore) ReservationsByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.ReservationView, error) {
	return s.list(ctx, reservationViewQuery+` WHERE r.client_id = $1 ORDER BY r.created_at DESC`, clientID)
}

func (s *ReservationReadStore) ReservationsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*queries.ReservationView, error) {
	return s.list(ctx, reservationViewQuery+` WHERE o.merchant_id = $1 ORDER BY r.created_at DESC`, merchantID)
}

func (s *ReservationReadStore) list(ctx context.Context, query string, arg any) ([]*queries.ReservationView, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate reservations", err)
	}
	return views, nil
}

func scanReservationView(row pgx.Rows) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(
		&v.ID, &v.OfferID, &v.OfferTitle, &v.MerchantID, &v.MerchantName,
		&v.ClientID, &v.Quantity, &v.TotalPriceCents, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation row", err)
	}
	return &v, nil
}

var _ queries.ReservationReadStore = (*ReservationReadStore)(nil)
