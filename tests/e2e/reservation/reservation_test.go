//go:build e2e

package reservation_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"kapkurtar/internal/handler/dto/request"
	"kapkurtar/internal/handler/dto/response"
	"kapkurtar/tests/common/dbtest"
	"kapkurtar/tests/common/httptest"
	"kapkurtar/tests/e2e"
	"kapkurtar/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL        = "/api/reservations"
	merchantReservationURL = "/api/merchant/reservations"
	offersURL              = "/api/offers"
)

const (
	istanbulLat = 41.0082
	istanbulLng = 28.9784
)

type ReservationSuite struct {
	e2e.SharedSuite
	identity *helper.IdentityTestHelper
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.identity = helper.NewIdentityTestHelper(s.Config.Identity)
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// seeds a merchant with one open offer and returns both IDs
func (s *ReservationSuite) seedOpenOffer(t *testing.T, quantity int32) (uuid.UUID, uuid.UUID) {
	t.Helper()
	now := time.Now()
	merchantID := dbtest.CreateTestMerchant(t, s.DB, "Nar Firini", istanbulLat, istanbulLng)
	offerID := dbtest.CreateTestOffer(t, s.DB, merchantID, "Evening surprise bag", quantity,
		now.Add(-1*time.Hour), now.Add(2*time.Hour), istanbulLat, istanbulLng)
	return merchantID, offerID
}

// =============================================================================
// TestCreateReservation - Reservation creation over the full stack
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: client reserves stock and the remainder is tracked", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		clientID := uuid.New()
		token := s.identity.IssueToken(t, clientID, "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 2}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationCreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, offerID, created.OfferID)
		require.Equal(t, int32(2), created.Quantity)
		require.Equal(t, int64(4000), created.TotalPriceCents)
		require.Equal(t, int32(1), created.RemainingStock)

		// the confirmed event is staged in the outbox within the same transaction
		require.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, "reservation_confirmed", offerID))

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var view response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &view))
		require.Equal(t, "pending", view.Status)
		require.Equal(t, clientID, view.ClientID)
		require.Equal(t, "Nar Firini", view.MerchantName)
	})

	s.Run("Normal case: taking the last unit stages a stock exhausted event", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 1)
		token := s.identity.IssueToken(t, uuid.New(), "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		require.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, "stock_exhausted", offerID))
	})

	s.Run("Normal case: concurrent requests cannot oversell the stock", func() {
		t := s.T()

		// stock 3, two competing reservations of 2: only one can win
		_, offerID := s.seedOpenOffer(t, 3)
		tokens := []string{
			s.identity.IssueToken(t, uuid.New(), "client"),
			s.identity.IssueToken(t, uuid.New(), "client"),
		}

		codes := make(chan int, len(tokens))
		var wg sync.WaitGroup
		for _, token := range tokens {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 2}, token)
				codes <- w.Code
			}(token)
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one competing reservation may win")
		require.Equal(t, 1, conflicted, "the loser must see a stock conflict")

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			offersURL+"/"+offerID.String(), nil, "")
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.OfferDetailResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Equal(t, int32(1), detail.Quantity, "stock decremented by the winner only")
	})

	s.Run("Error case: reserving more than the remaining stock conflicts", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 2)
		token := s.identity.IssueToken(t, uuid.New(), "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 3}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: a closed window is not reservable", func() {
		t := s.T()

		now := time.Now()
		merchantID := dbtest.CreateTestMerchant(t, s.DB, "Nar Firini", istanbulLat, istanbulLng)
		offerID := dbtest.CreateTestOffer(t, s.DB, merchantID, "Yesterday's bag", 5,
			now.Add(-3*time.Hour), now.Add(-1*time.Hour), istanbulLat, istanbulLng)
		token := s.identity.IssueToken(t, uuid.New(), "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: missing token is rejected", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: merchant tokens cannot use client routes", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		token := s.identity.IssueToken(t, uuid.New(), "merchant")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		token := s.identity.IssueExpiredToken(t, uuid.New(), "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestCancelReservation - Cancellation and stock restoration
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("Normal case: cancelling inside the window restores stock", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		clientID := uuid.New()
		token := s.identity.IssueToken(t, clientID, "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 2}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationCreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())

		var cancelled response.ReservationCancelledResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Outcome)
		require.Equal(t, "cancelled", cancelled.Status)

		require.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, "reservation_cancelled", offerID))

		// stock went back to its original level
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			offersURL+"/"+offerID.String(), nil, "")
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.OfferDetailResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Equal(t, int32(3), detail.Quantity)
	})

	s.Run("Error case: another client's reservation is invisible", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		reservationID := dbtest.CreateTestReservation(t, s.DB, offerID, uuid.New(), 1, "pending")

		token := s.identity.IssueToken(t, uuid.New(), "client")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+reservationID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: a completed reservation cannot be cancelled", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		clientID := uuid.New()
		reservationID := dbtest.CreateTestReservation(t, s.DB, offerID, clientID, 1, "completed")

		token := s.identity.IssueToken(t, clientID, "client")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+reservationID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// =============================================================================
// TestCompleteReservation - Merchant-side pickup confirmation
// =============================================================================

func (s *ReservationSuite) TestCompleteReservation() {
	s.Run("Normal case: the owning merchant completes a pickup", func() {
		t := s.T()

		merchantID, offerID := s.seedOpenOffer(t, 3)
		clientID := uuid.New()
		clientToken := s.identity.IssueToken(t, clientID, "client")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			request.CreateReservationRequest{OfferID: offerID.String(), Quantity: 1}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReservationCreatedResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		merchantToken := s.identity.IssueToken(t, merchantID, "merchant")
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			merchantReservationURL+"/"+created.ID.String()+"/complete", nil, merchantToken)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+created.ID.String(), nil, clientToken)
		require.Equal(t, http.StatusOK, dw.Code)

		var view response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &view))
		require.Equal(t, "completed", view.Status)
	})

	s.Run("Error case: a different merchant cannot complete the pickup", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 3)
		reservationID := dbtest.CreateTestReservation(t, s.DB, offerID, uuid.New(), 1, "pending")

		otherToken := s.identity.IssueToken(t, uuid.New(), "merchant")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			merchantReservationURL+"/"+reservationID.String()+"/complete", nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestListClientReservations - Reservation history for a client
// =============================================================================

func (s *ReservationSuite) TestListClientReservations() {
	s.Run("Normal case: only the caller's reservations are listed", func() {
		t := s.T()

		_, offerID := s.seedOpenOffer(t, 5)
		clientID := uuid.New()
		dbtest.CreateTestReservation(t, s.DB, offerID, clientID, 1, "pending")
		dbtest.CreateTestReservation(t, s.DB, offerID, clientID, 2, "cancelled")
		dbtest.CreateTestReservation(t, s.DB, offerID, uuid.New(), 1, "pending")

		token := s.identity.IssueToken(t, clientID, "client")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var views []response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &views))
		require.Len(t, views, 2)
		for _, v := range views {
			require.Equal(t, clientID, v.ClientID)
		}
	})
}
