//go:build unit || e2e

package builder

import (
	"time"

	"kapkurtar/internal/domain/geo"
	"kapkurtar/internal/domain/offer"
	reqdto "kapkurtar/internal/handler/dto/request"
	"kapkurtar/internal/usecase/queries"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

// BaseTime is the fixed reference instant shared by builders so tests can
// advance a mock clock instead of sleeping.
var BaseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type OfferBuilder struct {
	merchantID       uuid.UUID
	title            string
	description      string
	imageURL         string
	priceBeforeCents int64
	priceAfterCents  int64
	quantity         int32
	availableFrom    time.Time
	availableUntil   time.Time
	lat              float64
	lon              float64
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		merchantID:       uuid.New(),
		title:            "Surprise dinner box",
		description:      "End-of-day surplus from the kitchen",
		imageURL:         "https://cdn.example.com/offers/box.jpg",
		priceBeforeCents: 5000,
		priceAfterCents:  2000,
		quantity:         5,
		availableFrom:    BaseTime,
		availableUntil:   BaseTime.Add(2 * time.Hour),
		lat:              41.0082,
		lon:              28.9784,
	}
}

func (b *OfferBuilder) WithMerchantID(id uuid.UUID) *OfferBuilder {
	b.merchantID = id
	return b
}

func (b *OfferBuilder) WithTitle(title string) *OfferBuilder {
	b.title = title
	return b
}

func (b *OfferBuilder) WithPrices(beforeCents, afterCents int64) *OfferBuilder {
	b.priceBeforeCents = beforeCents
	b.priceAfterCents = afterCents
	return b
}

func (b *OfferBuilder) WithQuantity(qty int32) *OfferBuilder {
	b.quantity = qty
	return b
}

func (b *OfferBuilder) WithWindow(from, until time.Time) *OfferBuilder {
	b.availableFrom = from
	b.availableUntil = until
	return b
}

func (b *OfferBuilder) WithLocation(lat, lon float64) *OfferBuilder {
	b.lat = lat
	b.lon = lon
	return b
}

func (b *OfferBuilder) BuildDomain() (*offer.Offer, error) {
	loc, err := geo.NewPoint(b.lat, b.lon)
	if err != nil {
		return nil, err
	}
	return offer.NewOffer(
		b.merchantID,
		b.title,
		b.description,
		b.imageURL,
		b.priceBeforeCents,
		b.priceAfterCents,
		b.quantity,
		b.availableFrom,
		b.availableUntil,
		loc,
	)
}

func (b *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	return reqdto.CreateOfferRequest{
		Title:            b.title,
		Description:      b.description,
		ImageURL:         b.imageURL,
		PriceBeforeCents: b.priceBeforeCents,
		PriceAfterCents:  b.priceAfterCents,
		Quantity:         b.quantity,
		AvailableFrom:    b.availableFrom,
		AvailableUntil:   b.availableUntil,
		Latitude:         b.lat,
		Longitude:        b.lon,
	}
}

func (b *OfferBuilder) BuildSnapshot(id uuid.UUID) shared.OfferSnapshot {
	return shared.OfferSnapshot{
		ID:               id,
		MerchantID:       b.merchantID,
		Title:            b.title,
		Description:      b.description,
		ImageURL:         b.imageURL,
		PriceBeforeCents: b.priceBeforeCents,
		PriceAfterCents:  b.priceAfterCents,
		Quantity:         b.quantity,
		AvailableFrom:    b.availableFrom,
		AvailableUntil:   b.availableUntil,
		IsActive:         true,
		Latitude:         b.lat,
		Longitude:        b.lon,
		CreatedAt:        BaseTime,
		UpdatedAt:        BaseTime,
	}
}

func (b *OfferBuilder) BuildCandidate(id uuid.UUID) queries.OfferCandidate {
	return queries.OfferCandidate{
		ID:               id,
		Merchant:         b.buildMerchantInfo(),
		Title:            b.title,
		Description:      b.description,
		ImageURL:         b.imageURL,
		PriceBeforeCents: b.priceBeforeCents,
		PriceAfterCents:  b.priceAfterCents,
		Quantity:         b.quantity,
		AvailableFrom:    b.availableFrom,
		AvailableUntil:   b.availableUntil,
		Latitude:         b.lat,
		Longitude:        b.lon,
	}
}

func (b *OfferBuilder) BuildDetailRow(id uuid.UUID) queries.OfferDetailRow {
	return queries.OfferDetailRow{
		ID:               id,
		Merchant:         b.buildMerchantInfo(),
		Title:            b.title,
		Description:      b.description,
		ImageURL:         b.imageURL,
		PriceBeforeCents: b.priceBeforeCents,
		PriceAfterCents:  b.priceAfterCents,
		Quantity:         b.quantity,
		AvailableFrom:    b.availableFrom,
		AvailableUntil:   b.availableUntil,
		IsActive:         true,
		Latitude:         b.lat,
		Longitude:        b.lon,
		CreatedAt:        BaseTime,
		UpdatedAt:        BaseTime,
	}
}

func (b *OfferBuilder) buildMerchantInfo() queries.MerchantInfo {
	return queries.MerchantInfo{
		ID:           b.merchantID,
		BusinessName: "Nar Firini",
		City:         "Istanbul",
		Latitude:     b.lat,
		Longitude:    b.lon,
	}
}
