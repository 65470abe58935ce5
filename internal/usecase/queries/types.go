package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type MerchantInfo struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Street       string    `json:"street,omitempty"`
	City         string    `json:"city,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

// OfferCandidate is the raw row the discovery read store returns before
// distance filtering and time-window annotation.
type OfferCandidate struct {
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
	Latitude         float64
	Longitude        float64
}

// NearbyOfferView is a discovery result annotated with distance and
// countdown state, ready for map pins and offer cards.
type NearbyOfferView struct {
	ID               uuid.UUID    `json:"id"`
	Merchant         MerchantInfo `json:"merchant"`
	Title            string       `json:"title"`
	Description      string       `json:"description,omitempty"`
	ImageURL         string       `json:"image_url,omitempty"`
	PriceBeforeCents int64        `json:"price_before_cents"`
	PriceAfterCents  int64        `json:"price_after_cents"`
	Quantity         int32        `json:"quantity"`
	AvailableFrom    time.Time    `json:"available_from"`
	AvailableUntil   time.Time    `json:"available_until"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	DistanceMeters   float64      `json:"distance_meters"`
	RemainingLabel   string       `json:"remaining_label"`
	PercentRemaining float64      `json:"percent_remaining"`
	UrgencyTier      string       `json:"urgency_tier"`
}

// OfferDetailView backs the customer detail page and the merchant card;
// both share the same annotation so urgency never disagrees across views.
type OfferDetailView struct {
	ID               uuid.UUID    `json:"id"`
	Merchant         MerchantInfo `json:"merchant"`
	Title            string       `json:"title"`
	Description      string       `json:"description,omitempty"`
	ImageURL         string       `json:"image_url,omitempty"`
	PriceBeforeCents int64        `json:"price_before_cents"`
	PriceAfterCents  int64        `json:"price_after_cents"`
	Quantity         int32        `json:"quantity"`
	AvailableFrom    time.Time    `json:"available_from"`
	AvailableUntil   time.Time    `json:"available_until"`
	IsActive         bool         `json:"is_active"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	Expired          bool         `json:"expired"`
	RemainingLabel   string       `json:"remaining_label"`
	PercentRemaining float64      `json:"percent_remaining"`
	UrgencyTier      string       `json:"urgency_tier"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

type ReservationView struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offer_id"`
	OfferTitle      string    `json:"offer_title"`
	MerchantID      uuid.UUID `json:"merchant_id"`
	MerchantName    string    `json:"merchant_name"`
	ClientID        uuid.UUID `json:"client_id"`
	Quantity        int32     `json:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
