package api

import (
	"errors"
	"net/http"

	reqdto "kapkurtar/internal/handler/dto/request"
	resdto "kapkurtar/internal/handler/dto/response"
	"kapkurtar/internal/handler/httperr"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	discovery queries.DiscoveryQueries
	offers    queries.OfferQueries
}

func NewOfferHandler(discovery queries.DiscoveryQueries, offers queries.OfferQueries) *OfferHandler {
	return &OfferHandler{
		discovery: discovery,
		offers:    offers,
	}
}

// @Summary Find nearby offers
// @Description List reservable offers within a radius of the given position, nearest first
// @Tags offers
// @Produce json
// @Param lat query number true "Latitude in decimal degrees"
// @Param lng query number true "Longitude in decimal degrees"
// @Param radius query number false "Search radius in meters (default applies when omitted)"
// @Success 200 {array} resdto.NearbyOfferResponse
// @Failure 400 {object} map[string]string
// @Router /offers/nearby [get]
func (h *OfferHandler) FindNearbyOffers(c *gin.Context) {
	var req reqdto.NearbyOffersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	views, err := h.discovery.FindNearbyOffers(c.Request.Context(), req.Latitude, req.Longitude, req.RadiusMeters)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidGeoCoordinate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coordinates out of range",
			})
		case errors.Is(err, errs.ErrInvalidRadius):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Radius must be positive",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	response, err := resdto.FromNearbyOfferViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get offer
// @Description Get offer details with remaining-time annotation
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /offers/{id} [get]
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID format",
		})
		return
	}

	view, err := h.offers.GetOffer(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Offer not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	response, err := resdto.FromOfferDetailView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}
