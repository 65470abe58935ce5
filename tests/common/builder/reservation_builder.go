//go:build unit || e2e

package builder

import (
	"kapkurtar/internal/domain/reservation"
	reqdto "kapkurtar/internal/handler/dto/request"
	"kapkurtar/internal/usecase/queries"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID              uuid.UUID
	OfferID         uuid.UUID
	OfferTitle      string
	MerchantID      uuid.UUID
	MerchantName    string
	ClientID        uuid.UUID
	Quantity        int32
	TotalPriceCents int64
	Status          reservation.Status
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:              uuid.New(),
		OfferID:         uuid.New(),
		OfferTitle:      "Surprise dinner box",
		MerchantID:      uuid.New(),
		MerchantName:    "Nar Firini",
		ClientID:        uuid.New(),
		Quantity:        2,
		TotalPriceCents: 4000,
		Status:          reservation.StatusPending,
	}
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithQuantity(qty int32) *ReservationBuilder {
	b.Quantity = qty
	return b
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		OfferID:  b.OfferID.String(),
		Quantity: b.Quantity,
	}
}

func (b *ReservationBuilder) BuildView() queries.ReservationView {
	return queries.ReservationView{
		ID:              b.ID,
		OfferID:         b.OfferID,
		OfferTitle:      b.OfferTitle,
		MerchantID:      b.MerchantID,
		MerchantName:    b.MerchantName,
		ClientID:        b.ClientID,
		Quantity:        b.Quantity,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       BaseTime,
		UpdatedAt:       BaseTime,
	}
}

func (b *ReservationBuilder) BuildSnapshot() shared.ReservationSnapshot {
	return shared.ReservationSnapshot{
		ID:              b.ID,
		OfferID:         b.OfferID,
		ClientID:        b.ClientID,
		Quantity:        b.Quantity,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		CreatedAt:       BaseTime,
		UpdatedAt:       BaseTime,
	}
}
