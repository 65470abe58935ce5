//go:build unit

package offer_test

import (
	"testing"
	"time"

	"kapkurtar/internal/domain/offer"
	"kapkurtar/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerCase struct {
	name   string
	mutate func(*builder.OfferBuilder)
	errIs  error
}

func runOfferCases(t *testing.T, cases []offerCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewOfferBuilder()
			tc.mutate(b)
			_, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOffer(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Equal(t, int32(5), actual.Quantity())
		assert.Equal(t, int64(2000), actual.PriceAfterCents())
	})

	t.Run("price validation", func(t *testing.T) {
		runOfferCases(t, []offerCase{
			{
				name:   "zero original price",
				mutate: func(b *builder.OfferBuilder) { b.WithPrices(0, 0) },
				errIs:  offer.ErrInvalidPrice,
			},
			{
				name:   "discount above original",
				mutate: func(b *builder.OfferBuilder) { b.WithPrices(1000, 1500) },
				errIs:  offer.ErrInvalidPrice,
			},
			{
				name:   "negative discounted price",
				mutate: func(b *builder.OfferBuilder) { b.WithPrices(1000, -1) },
				errIs:  offer.ErrInvalidPrice,
			},
			{
				name:   "free offer is allowed",
				mutate: func(b *builder.OfferBuilder) { b.WithPrices(1000, 0) },
			},
			{
				name:   "equal prices are allowed",
				mutate: func(b *builder.OfferBuilder) { b.WithPrices(1000, 1000) },
			},
		})
	})

	t.Run("window and quantity validation", func(t *testing.T) {
		runOfferCases(t, []offerCase{
			{
				name: "inverted window",
				mutate: func(b *builder.OfferBuilder) {
					b.WithWindow(builder.BaseTime.Add(time.Hour), builder.BaseTime)
				},
				errIs: offer.ErrInvalidTimeWindow,
			},
			{
				name: "zero-length window",
				mutate: func(b *builder.OfferBuilder) {
					b.WithWindow(builder.BaseTime, builder.BaseTime)
				},
				errIs: offer.ErrInvalidTimeWindow,
			},
			{
				name:   "negative quantity",
				mutate: func(b *builder.OfferBuilder) { b.WithQuantity(-1) },
				errIs:  offer.ErrNegativeQuantity,
			},
			{
				name:   "zero quantity is allowed",
				mutate: func(b *builder.OfferBuilder) { b.WithQuantity(0) },
			},
			{
				name:   "empty title",
				mutate: func(b *builder.OfferBuilder) { b.WithTitle("   ") },
				errIs:  offer.ErrEmptyTitle,
			},
		})
	})
}

func TestOfferIsReservable(t *testing.T) {
	from := builder.BaseTime
	until := from.Add(2 * time.Hour)

	build := func(mutate func(*builder.OfferBuilder)) *offer.Offer {
		b := builder.NewOfferBuilder().WithWindow(from, until)
		if mutate != nil {
			mutate(b)
		}
		o, err := b.BuildDomain()
		require.NoError(t, err)
		return o
	}

	t.Run("reservable inside window with stock", func(t *testing.T) {
		assert.True(t, build(nil).IsReservable(from.Add(time.Minute)))
	})

	t.Run("reservable exactly at window start", func(t *testing.T) {
		assert.True(t, build(nil).IsReservable(from))
	})

	t.Run("not reservable at window end", func(t *testing.T) {
		assert.False(t, build(nil).IsReservable(until))
	})

	t.Run("not reservable before window start", func(t *testing.T) {
		assert.False(t, build(nil).IsReservable(from.Add(-time.Second)))
	})

	t.Run("not reservable without stock", func(t *testing.T) {
		o := build(func(b *builder.OfferBuilder) { b.WithQuantity(0) })
		assert.False(t, o.IsReservable(from.Add(time.Minute)))
	})
}

func TestOfferTotalPrice(t *testing.T) {
	o, err := builder.NewOfferBuilder().WithPrices(5000, 500).BuildDomain()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), o.TotalPriceCents(2))
}
