//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/commands"
	"kapkurtar/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferCommands(uow *fakeUoW) commands.OfferCommands {
	return commands.NewOfferCommands(uow, clock.NewMockClock(builder.BaseTime), testLogger())
}

func validCreateParams() commands.CreateOfferParams {
	return commands.CreateOfferParams{
		Title:            "Surprise dinner box",
		Description:      "End-of-day surplus from the kitchen",
		PriceBeforeCents: 5000,
		PriceAfterCents:  2000,
		Quantity:         5,
		AvailableFrom:    builder.BaseTime,
		AvailableUntil:   builder.BaseTime.Add(2 * time.Hour),
		Latitude:         41.0082,
		Longitude:        28.9784,
	}
}

func TestCreateOffer(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("persists a reservable listing", func(t *testing.T) {
		uow := newFakeUoW()
		c := newOfferCommands(uow)

		id, err := c.CreateOffer(ctx, merchantID, validCreateParams())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		snap := uow.offers[id]
		require.NotNil(t, snap)
		assert.Equal(t, merchantID, snap.MerchantID)
		assert.True(t, snap.IsActive)
		assert.Equal(t, int32(5), snap.Quantity)
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(p *commands.CreateOfferParams)
			wantErr error
		}{
			{
				name:    "window ends before it starts",
				mutate:  func(p *commands.CreateOfferParams) { p.AvailableUntil = p.AvailableFrom.Add(-time.Minute) },
				wantErr: errs.ErrInvalidOfferWindow,
			},
			{
				name:    "discounted price above original",
				mutate:  func(p *commands.CreateOfferParams) { p.PriceAfterCents = p.PriceBeforeCents + 1 },
				wantErr: errs.ErrInvalidPrice,
			},
			{
				name:    "latitude beyond pole",
				mutate:  func(p *commands.CreateOfferParams) { p.Latitude = 90.5 },
				wantErr: errs.ErrInvalidGeoCoordinate,
			},
			{
				name:    "empty title",
				mutate:  func(p *commands.CreateOfferParams) { p.Title = "" },
				wantErr: errs.ErrDomainValidation,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uow := newFakeUoW()
				c := newOfferCommands(uow)

				params := validCreateParams()
				tc.mutate(&params)

				_, err := c.CreateOffer(ctx, merchantID, params)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, uow.offers)
			})
		}
	})
}

func TestUpdateOffer(t *testing.T) {
	ctx := context.Background()
	offerID := uuid.New()

	seed := func() (*fakeUoW, uuid.UUID) {
		uow := newFakeUoW()
		snap := builder.NewOfferBuilder().BuildSnapshot(offerID)
		uow.putOffer(snap)
		return uow, snap.MerchantID
	}

	t.Run("patches only the provided fields", func(t *testing.T) {
		uow, merchantID := seed()
		c := newOfferCommands(uow)

		title := "Evening bundle"
		qty := int32(9)
		err := c.UpdateOffer(ctx, offerID, merchantID, commands.UpdateOfferParams{
			Title:    &title,
			Quantity: &qty,
		})
		require.NoError(t, err)

		snap := uow.offers[offerID]
		assert.Equal(t, "Evening bundle", snap.Title)
		assert.Equal(t, int32(9), snap.Quantity)
		assert.Equal(t, int64(2000), snap.PriceAfterCents)
	})

	t.Run("an edit cannot produce an invalid listing", func(t *testing.T) {
		uow, merchantID := seed()
		c := newOfferCommands(uow)

		badUntil := builder.BaseTime.Add(-time.Hour)
		err := c.UpdateOffer(ctx, offerID, merchantID, commands.UpdateOfferParams{
			AvailableUntil: &badUntil,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidOfferWindow)
		assert.Equal(t, builder.BaseTime.Add(2*time.Hour), uow.offers[offerID].AvailableUntil)
	})

	t.Run("another merchant's offer reads as missing", func(t *testing.T) {
		uow, _ := seed()
		c := newOfferCommands(uow)

		title := "hijack"
		err := c.UpdateOffer(ctx, offerID, uuid.New(), commands.UpdateOfferParams{Title: &title})
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)
	})

	t.Run("unknown offer", func(t *testing.T) {
		uow := newFakeUoW()
		c := newOfferCommands(uow)

		title := "anything"
		err := c.UpdateOffer(ctx, uuid.New(), uuid.New(), commands.UpdateOfferParams{Title: &title})
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)
	})
}

func TestDeactivateOffer(t *testing.T) {
	ctx := context.Background()
	offerID := uuid.New()

	t.Run("pulls the listing from discovery", func(t *testing.T) {
		uow := newFakeUoW()
		snap := builder.NewOfferBuilder().BuildSnapshot(offerID)
		uow.putOffer(snap)
		c := newOfferCommands(uow)

		err := c.DeactivateOffer(ctx, offerID, snap.MerchantID)
		require.NoError(t, err)
		assert.False(t, uow.offers[offerID].IsActive)
	})

	t.Run("another merchant's offer reads as missing", func(t *testing.T) {
		uow := newFakeUoW()
		snap := builder.NewOfferBuilder().BuildSnapshot(offerID)
		uow.putOffer(snap)
		c := newOfferCommands(uow)

		err := c.DeactivateOffer(ctx, offerID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrOfferNotFound)
		assert.True(t, uow.offers[offerID].IsActive)
	})
}
