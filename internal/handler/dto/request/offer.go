package request

import (
	"time"

	"kapkurtar/internal/usecase/commands"
)

type CreateOfferRequest struct {
	Title            string    `json:"title" binding:"required,max=200"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url" binding:"omitempty,url"`
	PriceBeforeCents int64     `json:"price_before_cents" binding:"required,gt=0"`
	PriceAfterCents  int64     `json:"price_after_cents" binding:"gte=0"`
	Quantity         int32     `json:"quantity" binding:"gte=0"`
	AvailableFrom    time.Time `json:"available_from" binding:"required"`
	AvailableUntil   time.Time `json:"available_until" binding:"required"`
	Latitude         float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude        float64   `json:"longitude" binding:"min=-180,max=180"`
}

func (r *CreateOfferRequest) ToParams() commands.CreateOfferParams {
	return commands.CreateOfferParams{
		Title:            r.Title,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
		PriceBeforeCents: r.PriceBeforeCents,
		PriceAfterCents:  r.PriceAfterCents,
		Quantity:         r.Quantity,
		AvailableFrom:    r.AvailableFrom,
		AvailableUntil:   r.AvailableUntil,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
	}
}

type UpdateOfferRequest struct {
	Title            *string    `json:"title" binding:"omitempty,max=200"`
	Description      *string    `json:"description"`
	ImageURL         *string    `json:"image_url" binding:"omitempty,url"`
	PriceBeforeCents *int64     `json:"price_before_cents" binding:"omitempty,gt=0"`
	PriceAfterCents  *int64     `json:"price_after_cents" binding:"omitempty,gte=0"`
	Quantity         *int32     `json:"quantity" binding:"omitempty,gte=0"`
	AvailableFrom    *time.Time `json:"available_from"`
	AvailableUntil   *time.Time `json:"available_until"`
	IsActive         *bool      `json:"is_active"`
}

func (r *UpdateOfferRequest) ToParams() commands.UpdateOfferParams {
	return commands.UpdateOfferParams{
		Title:            r.Title,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
		PriceBeforeCents: r.PriceBeforeCents,
		PriceAfterCents:  r.PriceAfterCents,
		Quantity:         r.Quantity,
		AvailableFrom:    r.AvailableFrom,
		AvailableUntil:   r.AvailableUntil,
		IsActive:         r.IsActive,
	}
}

// NearbyOffersRequest binds the discovery query string. Radius is optional;
// the service applies the configured default when it is absent.
type NearbyOffersRequest struct {
	Latitude     float64  `form:"lat" binding:"min=-90,max=90"`
	Longitude    float64  `form:"lng" binding:"min=-180,max=180"`
	RadiusMeters *float64 `form:"radius"`
}
