package api

import (
	"errors"
	"net/http"

	"kapkurtar/internal/handler/dto/request"
	resdto "kapkurtar/internal/handler/dto/response"
	"kapkurtar/internal/handler/httperr"
	"kapkurtar/internal/handler/middleware"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/commands"
	"kapkurtar/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MerchantHandler owns every route behind the merchant role: offer
// management, pickup confirmation, and the merchant's reservation list.
type MerchantHandler struct {
	offerCommands       commands.OfferCommands
	reservationCommands commands.ReservationCommands
	offerQueries        queries.OfferQueries
	reservationQueries  queries.ReservationQueries
}

func NewMerchantHandler(
	offerCommands commands.OfferCommands,
	reservationCommands commands.ReservationCommands,
	offerQueries queries.OfferQueries,
	reservationQueries queries.ReservationQueries,
) *MerchantHandler {
	return &MerchantHandler{
		offerCommands:       offerCommands,
		reservationCommands: reservationCommands,
		offerQueries:        offerQueries,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create offer
// @Description Publish a new surplus offer for the authenticated merchant
// @Tags merchant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateOfferRequest true "Offer payload"
// @Success 201 {object} resdto.OfferCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /merchant/offers [post]
func (h *MerchantHandler) CreateOffer(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	var req request.CreateOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.offerCommands.CreateOffer(c.Request.Context(), merchantID, req.ToParams())
	if err != nil {
		h.writeOfferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.OfferCreatedResponse{ID: id})
}

// @Summary Update offer
// @Description Patch an existing offer owned by the authenticated merchant
// @Tags merchant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body request.UpdateOfferRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /merchant/offers/{id} [patch]
func (h *MerchantHandler) UpdateOffer(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID format",
		})
		return
	}

	var req request.UpdateOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.offerCommands.UpdateOffer(c.Request.Context(), offerID, merchantID, req.ToParams()); err != nil {
		h.writeOfferError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Deactivate offer
// @Description Pull an offer from discovery without touching existing reservations
// @Tags merchant
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /merchant/offers/{id} [delete]
func (h *MerchantHandler) DeactivateOffer(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID format",
		})
		return
	}

	if err := h.offerCommands.DeactivateOffer(c.Request.Context(), offerID, merchantID); err != nil {
		h.writeOfferError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List merchant offers
// @Description List the authenticated merchant's offers with countdown annotation
// @Tags merchant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OfferDetailResponse
// @Failure 401 {object} map[string]string
// @Router /merchant/offers [get]
func (h *MerchantHandler) ListOffers(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	views, err := h.offerQueries.ListMerchantOffers(c.Request.Context(), merchantID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response, err := resdto.FromOfferDetailViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Complete reservation
// @Description Mark a pending reservation as picked up
// @Tags merchant
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /merchant/reservations/{id}/complete [post]
func (h *MerchantHandler) CompleteReservation(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.reservationCommands.CompleteReservation(c.Request.Context(), id, merchantID); err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound), errors.Is(err, errs.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, errs.ErrReservationNotPending):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is not pending",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List merchant reservations
// @Description List reservations across the authenticated merchant's offers
// @Tags merchant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} map[string]string
// @Router /merchant/reservations [get]
func (h *MerchantHandler) ListReservations(c *gin.Context) {
	merchantID, ok := middleware.GetSubjectID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("subject missing from context"), "Internal server error", nil)
		return
	}

	views, err := h.reservationQueries.ListMerchantReservations(c.Request.Context(), merchantID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response, err := resdto.FromReservationViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *MerchantHandler) writeOfferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Offer not found",
		})
	case errors.Is(err, errs.ErrInvalidOfferWindow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Offer window must start before it ends",
		})
	case errors.Is(err, errs.ErrInvalidPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid price",
		})
	case errors.Is(err, errs.ErrInvalidGeoCoordinate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Coordinates out of range",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
