package response

import (
	"time"

	"kapkurtar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type MerchantResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"businessName"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	Street       string    `json:"street,omitempty"`
	City         string    `json:"city,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

type NearbyOfferResponse struct {
	ID               uuid.UUID        `json:"id"`
	Merchant         MerchantResponse `json:"merchant"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	PriceBeforeCents int64            `json:"priceBeforeCents"`
	PriceAfterCents  int64            `json:"priceAfterCents"`
	Quantity         int32            `json:"quantity"`
	AvailableFrom    time.Time        `json:"availableFrom"`
	AvailableUntil   time.Time        `json:"availableUntil"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	DistanceMeters   float64          `json:"distanceMeters"`
	RemainingLabel   string           `json:"remainingLabel"`
	PercentRemaining float64          `json:"percentRemaining"`
	UrgencyTier      string           `json:"urgencyTier"`
}

type OfferDetailResponse struct {
	ID               uuid.UUID        `json:"id"`
	Merchant         MerchantResponse `json:"merchant"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	PriceBeforeCents int64            `json:"priceBeforeCents"`
	PriceAfterCents  int64            `json:"priceAfterCents"`
	Quantity         int32            `json:"quantity"`
	AvailableFrom    time.Time        `json:"availableFrom"`
	AvailableUntil   time.Time        `json:"availableUntil"`
	IsActive         bool             `json:"isActive"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	Expired          bool             `json:"expired"`
	RemainingLabel   string           `json:"remainingLabel"`
	PercentRemaining float64          `json:"percentRemaining"`
	UrgencyTier      string           `json:"urgencyTier"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type OfferCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromNearbyOfferView(v *queries.NearbyOfferView) (*NearbyOfferResponse, error) {
	var resp NearbyOfferResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromNearbyOfferViews(views []*queries.NearbyOfferView) ([]NearbyOfferResponse, error) {
	resps := make([]NearbyOfferResponse, 0, len(views))
	for _, v := range views {
		r, err := FromNearbyOfferView(v)
		if err != nil {
			return nil, err
		}
		resps = append(resps, *r)
	}
	return resps, nil
}

func FromOfferDetailView(v *queries.OfferDetailView) (*OfferDetailResponse, error) {
	var resp OfferDetailResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromOfferDetailViews(views []*queries.OfferDetailView) ([]OfferDetailResponse, error) {
	resps := make([]OfferDetailResponse, 0, len(views))
	for _, v := range views {
		r, err := FromOfferDetailView(v)
		if err != nil {
			return nil, err
		}
		resps = append(resps, *r)
	}
	return resps, nil
}
