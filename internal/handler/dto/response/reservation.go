package response

import (
	"time"

	"kapkurtar/internal/usecase/commands"
	"kapkurtar/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offerId"`
	OfferTitle      string    `json:"offerTitle"`
	MerchantID      uuid.UUID `json:"merchantId"`
	MerchantName    string    `json:"merchantName"`
	ClientID        uuid.UUID `json:"clientId"`
	Quantity        int32     `json:"quantity"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ReservationCreatedResponse struct {
	ID              uuid.UUID `json:"id"`
	OfferID         uuid.UUID `json:"offerId"`
	Quantity        int32     `json:"quantity"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	RemainingStock  int32     `json:"remainingStock"`
}

type ReservationCancelledResponse struct {
	ID      uuid.UUID `json:"id"`
	Outcome string    `json:"outcome"`
	Status  string    `json:"status"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationViews(views []*queries.ReservationView) ([]ReservationResponse, error) {
	resps := make([]ReservationResponse, 0, len(views))
	for _, v := range views {
		r, err := FromReservationView(v)
		if err != nil {
			return nil, err
		}
		resps = append(resps, *r)
	}
	return resps, nil
}

func FromCreateReservationResult(r *commands.CreateReservationResult) *ReservationCreatedResponse {
	return &ReservationCreatedResponse{
		ID:              r.ReservationID,
		OfferID:         r.OfferID,
		Quantity:        r.Quantity,
		TotalPriceCents: r.TotalPriceCents,
		RemainingStock:  r.RemainingStock,
	}
}

func FromCancelReservationResult(id uuid.UUID, r *commands.CancelReservationResult) *ReservationCancelledResponse {
	return &ReservationCancelledResponse{
		ID:      id,
		Outcome: string(r.Outcome),
		Status:  string(r.Status),
	}
}
