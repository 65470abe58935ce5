package queries

import (
	"context"

	"kapkurtar/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ReservationsByClient(ctx context.Context, clientID uuid.UUID) ([]*ReservationView, error)
	ReservationsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListClientReservations(ctx context.Context, clientID uuid.UUID) ([]*ReservationView, error)
	ListMerchantReservations(ctx context.Context, merchantID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.ReservationByID(ctx, id)
	if err != nil {
		return nil, markIfNotFound(err, errs.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListClientReservations(ctx context.Context, clientID uuid.UUID) ([]*ReservationView, error) {
	return q.store.ReservationsByClient(ctx, clientID)
}

func (q *reservationQueriesImpl) ListMerchantReservations(ctx context.Context, merchantID uuid.UUID) ([]*ReservationView, error) {
	return q.store.ReservationsByMerchant(ctx, merchantID)
}
