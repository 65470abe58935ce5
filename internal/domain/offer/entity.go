package offer

import (
	"errors"
	"strings"
	"time"

	"kapkurtar/internal/domain/geo"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("offer title is empty")
	ErrInvalidPrice      = errors.New("invalid offer price")
	ErrNegativeQuantity  = errors.New("offer quantity cannot be negative")
	ErrInvalidTimeWindow = errors.New("available_until must be after available_from")
)

const MaxTitleLength = 200

// Offer is a merchant-listed, time-bounded, quantity-limited discounted
// item. Expiry and stock-out are derived states: an offer is reservable iff
// it is active, has stock, and now falls inside its availability window.
type Offer struct {
	id               uuid.UUID
	merchantID       uuid.UUID
	title            string
	description      string
	imageURL         string
	priceBeforeCents int64
	priceAfterCents  int64
	quantity         int32
	availableFrom    time.Time
	availableUntil   time.Time
	isActive         bool
	location         geo.Point
	expiredAt        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewOffer(
	merchantID uuid.UUID,
	title, description, imageURL string,
	priceBeforeCents, priceAfterCents int64,
	quantity int32,
	availableFrom, availableUntil time.Time,
	location geo.Point,
) (*Offer, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, ErrEmptyTitle
	}
	if priceBeforeCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if priceAfterCents < 0 || priceAfterCents > priceBeforeCents {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if !availableUntil.After(availableFrom) {
		return nil, ErrInvalidTimeWindow
	}

	return &Offer{
		id:               uuid.New(),
		merchantID:       merchantID,
		title:            title,
		description:      description,
		imageURL:         imageURL,
		priceBeforeCents: priceBeforeCents,
		priceAfterCents:  priceAfterCents,
		quantity:         quantity,
		availableFrom:    availableFrom,
		availableUntil:   availableUntil,
		isActive:         true,
		location:         location,
	}, nil
}

func ReconstructOffer(
	id, merchantID uuid.UUID,
	title, description, imageURL string,
	priceBeforeCents, priceAfterCents int64,
	quantity int32,
	availableFrom, availableUntil time.Time,
	isActive bool,
	location geo.Point,
	expiredAt *time.Time,
	createdAt, updatedAt time.Time,
) *Offer {
	return &Offer{
		id:               id,
		merchantID:       merchantID,
		title:            title,
		description:      description,
		imageURL:         imageURL,
		priceBeforeCents: priceBeforeCents,
		priceAfterCents:  priceAfterCents,
		quantity:         quantity,
		availableFrom:    availableFrom,
		availableUntil:   availableUntil,
		isActive:         isActive,
		location:         location,
		expiredAt:        expiredAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// IsReservable reports whether a reservation may be created against this
// offer at now.
func (o *Offer) IsReservable(now time.Time) bool {
	return o.isActive &&
		o.quantity > 0 &&
		!now.Before(o.availableFrom) &&
		now.Before(o.availableUntil)
}

// HasExpired reports whether the availability window has closed.
func (o *Offer) HasExpired(now time.Time) bool {
	return !now.Before(o.availableUntil)
}

// TotalPriceCents computes the authoritative price for qty units at the
// current discounted price. Captured into a reservation at creation time;
// later price edits never move an existing reservation's total.
func (o *Offer) TotalPriceCents(qty int32) int64 {
	return o.priceAfterCents * int64(qty)
}

func (o *Offer) Window(now time.Time) TimeWindow {
	return AnnotateWindow(o.availableFrom, o.availableUntil, now)
}

func (o *Offer) ID() uuid.UUID             { return o.id }
func (o *Offer) MerchantID() uuid.UUID     { return o.merchantID }
func (o *Offer) Title() string             { return o.title }
func (o *Offer) Description() string       { return o.description }
func (o *Offer) ImageURL() string          { return o.imageURL }
func (o *Offer) PriceBeforeCents() int64   { return o.priceBeforeCents }
func (o *Offer) PriceAfterCents() int64    { return o.priceAfterCents }
func (o *Offer) Quantity() int32           { return o.quantity }
func (o *Offer) AvailableFrom() time.Time  { return o.availableFrom }
func (o *Offer) AvailableUntil() time.Time { return o.availableUntil }
func (o *Offer) IsActive() bool            { return o.isActive }
func (o *Offer) Location() geo.Point       { return o.location }
func (o *Offer) ExpiredAt() *time.Time     { return o.expiredAt }
func (o *Offer) CreatedAt() time.Time      { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time      { return o.updatedAt }
