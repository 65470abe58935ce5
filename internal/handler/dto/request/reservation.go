package request

type CreateReservationRequest struct {
	OfferID  string `json:"offer_id" binding:"required,uuid"`
	Quantity int32  `json:"quantity" binding:"required,gt=0"`
}
