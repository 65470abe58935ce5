package reservation

import (
	"errors"
	"time"

	"kapkurtar/internal/domain/offer"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity    = errors.New("reservation quantity must be at least 1")
	ErrOfferNotReservable = errors.New("offer is not reservable")
	ErrInsufficientStock  = errors.New("requested quantity exceeds remaining stock")
	ErrNotPending         = errors.New("reservation is not pending")
)

// Reservation is a client's claim on a quantity of an offer's stock,
// pending pickup. Only pending reservations transition; completed,
// cancelled and expired are terminal.
type Reservation struct {
	id              uuid.UUID
	offerID         uuid.UUID
	clientID        uuid.UUID
	quantity        int32
	totalPriceCents int64
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation validates the claim against the offer as seen at now and
// captures the total price. The ledger's conditional decrement remains the
// concurrency authority; this is the fail-fast path that rejects malformed
// requests before any state is touched.
func NewReservation(off *offer.Offer, clientID uuid.UUID, qty int32, now time.Time) (*Reservation, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if !off.IsReservable(now) {
		return nil, ErrOfferNotReservable
	}
	if qty > off.Quantity() {
		return nil, ErrInsufficientStock
	}

	return &Reservation{
		id:              uuid.New(),
		offerID:         off.ID(),
		clientID:        clientID,
		quantity:        qty,
		totalPriceCents: off.TotalPriceCents(qty),
		status:          StatusPending,
	}, nil
}

func ReconstructReservation(
	id, offerID, clientID uuid.UUID,
	quantity int32,
	totalPriceCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		offerID:         offerID,
		clientID:        clientID,
		quantity:        quantity,
		totalPriceCents: totalPriceCents,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel releases the claim. Stock reclamation is the ledger's concern; the
// entity only guards the transition.
func (r *Reservation) Cancel() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusCancelled
	return nil
}

// Complete records merchant-confirmed pickup. No stock change: stock was
// decremented at creation.
func (r *Reservation) Complete() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusCompleted
	return nil
}

// Expire marks the claim dead because the parent offer's window closed.
func (r *Reservation) Expire() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusExpired
	return nil
}

func (r *Reservation) IsPending() bool { return r.status == StatusPending }

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) OfferID() uuid.UUID     { return r.offerID }
func (r *Reservation) ClientID() uuid.UUID    { return r.clientID }
func (r *Reservation) Quantity() int32        { return r.quantity }
func (r *Reservation) TotalPriceCents() int64 { return r.totalPriceCents }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
