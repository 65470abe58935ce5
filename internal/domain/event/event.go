package event

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies a domain transition the core must surface to the external
// notification delivery collaborator. Each kind is emitted exactly once per
// triggering transition, inside the same transaction that performed it.
type Kind string

const (
	KindReservationConfirmed Kind = "reservation_confirmed"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindReservationExpired   Kind = "reservation_expired"
	KindStockExhausted       Kind = "stock_exhausted"
	KindOfferExpired         Kind = "offer_expired"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindReservationConfirmed, KindReservationCancelled,
		KindReservationExpired, KindStockExhausted, KindOfferExpired:
		return true
	default:
		return false
	}
}

// Event is the payload handed to the delivery collaborator. Reservation
// fields are zero for offer-level kinds.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Kind          Kind      `json:"kind"`
	OfferID       uuid.UUID `json:"offer_id"`
	MerchantID    uuid.UUID `json:"merchant_id"`
	ReservationID uuid.UUID `json:"reservation_id,omitempty"`
	ClientID      uuid.UUID `json:"client_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func ReservationConfirmed(reservationID, clientID, offerID, merchantID uuid.UUID, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Kind:          KindReservationConfirmed,
		OfferID:       offerID,
		MerchantID:    merchantID,
		ReservationID: reservationID,
		ClientID:      clientID,
		OccurredAt:    at,
	}
}

func ReservationCancelled(reservationID, clientID, offerID, merchantID uuid.UUID, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Kind:          KindReservationCancelled,
		OfferID:       offerID,
		MerchantID:    merchantID,
		ReservationID: reservationID,
		ClientID:      clientID,
		OccurredAt:    at,
	}
}

func ReservationExpired(reservationID, clientID, offerID, merchantID uuid.UUID, at time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Kind:          KindReservationExpired,
		OfferID:       offerID,
		MerchantID:    merchantID,
		ReservationID: reservationID,
		ClientID:      clientID,
		OccurredAt:    at,
	}
}

func StockExhausted(offerID, merchantID uuid.UUID, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       KindStockExhausted,
		OfferID:    offerID,
		MerchantID: merchantID,
		OccurredAt: at,
	}
}

func OfferExpired(offerID, merchantID uuid.UUID, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       KindOfferExpired,
		OfferID:    offerID,
		MerchantID: merchantID,
		OccurredAt: at,
	}
}
