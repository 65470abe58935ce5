//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"kapkurtar/internal/handler/api"
	resdto "kapkurtar/internal/handler/dto/response"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/queries"
	"kapkurtar/tests/common/builder"
	"kapkurtar/tests/common/httptest"
	"kapkurtar/tests/common/testutil"
	commandsmock "kapkurtar/tests/mock/commands"
	queriesmock "kapkurtar/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var testMerchantID = uuid.MustParse("6f1b0a36-9f30-4f0e-9a3e-222222222222")

type MerchantHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockCtrl                *gomock.Controller
	mockOfferCommands       *commandsmock.MockOfferCommands
	mockReservationCommands *commandsmock.MockReservationCommands
	mockOfferQueries        *queriesmock.MockOfferQueries
	mockReservationQueries  *queriesmock.MockReservationQueries
	handler                 *api.MerchantHandler
}

func (s *MerchantHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockOfferCommands = commandsmock.NewMockOfferCommands(s.mockCtrl)
	s.mockReservationCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockOfferQueries = queriesmock.NewMockOfferQueries(s.mockCtrl)
	s.mockReservationQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewMerchantHandler(
		s.mockOfferCommands,
		s.mockReservationCommands,
		s.mockOfferQueries,
		s.mockReservationQueries,
	)

	identity := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("subject_id", testMerchantID)
		c.Set("subject_role", "merchant")
		c.Next()
	}

	s.router.POST("/merchant/offers", identity, s.handler.CreateOffer)
	s.router.GET("/merchant/offers", identity, s.handler.ListOffers)
	s.router.PATCH("/merchant/offers/:id", identity, s.handler.UpdateOffer)
	s.router.DELETE("/merchant/offers/:id", identity, s.handler.DeactivateOffer)
	s.router.GET("/merchant/reservations", identity, s.handler.ListReservations)
	s.router.POST("/merchant/reservations/:id/complete", identity, s.handler.CompleteReservation)
}

func (s *MerchantHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMerchantHandlerSuite(t *testing.T) {
	suite.Run(t, new(MerchantHandlerTestSuite))
}

func (s *MerchantHandlerTestSuite) TestCreateOffer() {
	url := "/merchant/offers"
	reqBody := builder.NewOfferBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 with the new offer id", func() {
		newID := uuid.New()
		s.mockOfferCommands.EXPECT().
			CreateOffer(gomock.Any(), testMerchantID, gomock.Any()).
			Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.OfferCreatedResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(newID, resp.ID)
	})

	s.Run("unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("validation: rejected by binding", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing title", mutate: testutil.Field("title", nil)},
			{name: "zero original price", mutate: testutil.Field("price_before_cents", 0)},
			{name: "negative quantity", mutate: testutil.Field("quantity", -1)},
			{name: "latitude beyond pole", mutate: testutil.Field("latitude", 90.5)},
			{name: "longitude beyond antimeridian", mutate: testutil.Field("longitude", -180.5)},
		}
		for _, tc := range cases {
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
			s.Equal(http.StatusBadRequest, rec.Code, tc.name)
		}
	})

	s.Run("domain rejections map to 422", func() {
		cases := []error{
			errs.ErrInvalidOfferWindow,
			errs.ErrInvalidPrice,
			errs.ErrDomainValidation,
		}
		for _, wantErr := range cases {
			s.mockOfferCommands.EXPECT().
				CreateOffer(gomock.Any(), testMerchantID, gomock.Any()).
				Return(uuid.Nil, wantErr).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
			s.Equal(http.StatusUnprocessableEntity, rec.Code, wantErr.Error())
		}
	})
}

func (s *MerchantHandlerTestSuite) TestUpdateOffer() {
	id := uuid.New()
	url := "/merchant/offers/" + id.String()
	newTitle := "Evening bundle"

	s.Run("success: returns 204", func() {
		s.mockOfferCommands.EXPECT().
			UpdateOffer(gomock.Any(), id, testMerchantID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"title": newTitle}, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unknown offer", func() {
		s.mockOfferCommands.EXPECT().
			UpdateOffer(gomock.Any(), id, testMerchantID, gomock.Any()).
			Return(errs.ErrOfferNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"title": newTitle}, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *MerchantHandlerTestSuite) TestDeactivateOffer() {
	id := uuid.New()
	url := "/merchant/offers/" + id.String()

	s.Run("success: returns 204", func() {
		s.mockOfferCommands.EXPECT().
			DeactivateOffer(gomock.Any(), id, testMerchantID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *MerchantHandlerTestSuite) TestListOffers() {
	view := &queries.OfferDetailView{
		ID:             uuid.New(),
		Title:          "Surprise dinner box",
		RemainingLabel: "45 min",
		UrgencyTier:    "critical",
		AvailableFrom:  builder.BaseTime,
		AvailableUntil: builder.BaseTime.Add(time.Hour),
	}

	s.Run("success", func() {
		s.mockOfferQueries.EXPECT().
			ListMerchantOffers(gomock.Any(), testMerchantID).
			Return([]*queries.OfferDetailView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/merchant/offers", nil, "token")
		s.Equal(http.StatusOK, rec.Code)

		var resp []resdto.OfferDetailResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Len(resp, 1)
		s.Equal("critical", resp[0].UrgencyTier)
	})
}

func (s *MerchantHandlerTestSuite) TestCompleteReservation() {
	id := uuid.New()
	url := "/merchant/reservations/" + id.String() + "/complete"

	s.Run("success: returns 204", func() {
		s.mockReservationCommands.EXPECT().
			CompleteReservation(gomock.Any(), id, testMerchantID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("not pending", func() {
		s.mockReservationCommands.EXPECT().
			CompleteReservation(gomock.Any(), id, testMerchantID).
			Return(errs.ErrReservationNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("another merchant's reservation reads as missing", func() {
		s.mockReservationCommands.EXPECT().
			CompleteReservation(gomock.Any(), id, testMerchantID).
			Return(errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
