package queries

import (
	"context"
	"time"

	"kapkurtar/internal/domain/offer"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/errs"

	"github.com/google/uuid"
)

// OfferDetailRow is the unannotated row the read store returns for a single
// offer joined with its merchant.
type OfferDetailRow struct {
	ID               uuid.UUID
	Merchant         MerchantInfo
	Title            string
	Description      string
	ImageURL         string
	PriceBeforeCents int64
	PriceAfterCents  int64
	Quantity         int32
	AvailableFrom    time.Time
	AvailableUntil   time.Time
	IsActive         bool
	Latitude         float64
	Longitude        float64
	ExpiredAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OfferReadStore interface {
	OfferByID(ctx context.Context, id uuid.UUID) (*OfferDetailRow, error)
	OffersByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*OfferDetailRow, error)
}

type OfferQueries interface {
	GetOffer(ctx context.Context, id uuid.UUID) (*OfferDetailView, error)
	// ListMerchantOffers annotates each offer with the same countdown the
	// customer views use, so merchant cards agree on urgency.
	ListMerchantOffers(ctx context.Context, merchantID uuid.UUID) ([]*OfferDetailView, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
	clock clock.Clock
}

func NewOfferQueries(store OfferReadStore, clk clock.Clock) OfferQueries {
	return &offerQueriesImpl{
		store: store,
		clock: clk,
	}
}

func (q *offerQueriesImpl) GetOffer(ctx context.Context, id uuid.UUID) (*OfferDetailView, error) {
	row, err := q.store.OfferByID(ctx, id)
	if err != nil {
		return nil, markIfNotFound(err, errs.ErrOfferNotFound)
	}
	return annotateOfferRow(row, q.clock.Now()), nil
}

func (q *offerQueriesImpl) ListMerchantOffers(ctx context.Context, merchantID uuid.UUID) ([]*OfferDetailView, error) {
	rows, err := q.store.OffersByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	views := make([]*OfferDetailView, len(rows))
	for i, row := range rows {
		views[i] = annotateOfferRow(row, now)
	}
	return views, nil
}

func annotateOfferRow(row *OfferDetailRow, now time.Time) *OfferDetailView {
	window := offer.AnnotateWindow(row.AvailableFrom, row.AvailableUntil, now)
	return &OfferDetailView{
		ID:               row.ID,
		Merchant:         row.Merchant,
		Title:            row.Title,
		Description:      row.Description,
		ImageURL:         row.ImageURL,
		PriceBeforeCents: row.PriceBeforeCents,
		PriceAfterCents:  row.PriceAfterCents,
		Quantity:         row.Quantity,
		AvailableFrom:    row.AvailableFrom,
		AvailableUntil:   row.AvailableUntil,
		IsActive:         row.IsActive,
		Latitude:         row.Latitude,
		Longitude:        row.Longitude,
		Expired:          window.Expired,
		RemainingLabel:   window.Label,
		PercentRemaining: window.PercentRemaining,
		UrgencyTier:      window.Tier.String(),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
