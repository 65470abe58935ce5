package shared

import (
	"time"

	"kapkurtar/internal/domain/geo"
	"kapkurtar/internal/domain/offer"
	"kapkurtar/internal/domain/reservation"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads. The read stores own the richer
// display views; commands only need what the state machine checks.

type OfferSnapshot struct {
	ID               uuid.UUID
	MerchantID       uuid.UUID
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

// ToDomain rebuilds the offer entity. Fails on malformed rows (for example
// corrupted coordinates), which sweep callers skip rather than abort on.
func (s *OfferSnapshot) ToDomain() (*offer.Offer, error) {
	loc, err := geo.NewPoint(s.Latitude, s.Longitude)
	if err != nil {
		return nil, err
	}
	return offer.ReconstructOffer(
		s.ID, s.MerchantID,
		s.Title, s.Description, s.ImageURL,
		s.PriceBeforeCents, s.PriceAfterCents,
		s.Quantity,
		s.AvailableFrom, s.AvailableUntil,
		s.IsActive,
		loc,
		s.ExpiredAt,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

type ReservationSnapshot struct {
	ID              uuid.UUID
	OfferID         uuid.UUID
	ClientID        uuid.UUID
	Quantity        int32
	TotalPriceCents int64
	Status          reservation.Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
