//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/config"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/queries"
	"kapkurtar/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDiscoveryStore struct {
	candidates []*queries.OfferCandidate
	err        error
}

func (s *stubDiscoveryStore) ReservableOffers(_ context.Context) ([]*queries.OfferCandidate, error) {
	return s.candidates, s.err
}

const (
	centerLat = 41.0082
	centerLon = 28.9784
)

func newDiscovery(store queries.DiscoveryReadStore, clk clock.Clock) queries.DiscoveryQueries {
	cfg := config.DiscoveryConfig{
		DefaultRadiusMeters: 5000,
		MaxRadiusMeters:     50000,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return queries.NewDiscoveryQueries(store, cfg, clk, logger)
}

func candidateAt(lat, lon float64) *queries.OfferCandidate {
	c := builder.NewOfferBuilder().
		WithLocation(lat, lon).
		WithWindow(builder.BaseTime, builder.BaseTime.Add(2*time.Hour)).
		BuildCandidate(uuid.New())
	return &c
}

func ptr(f float64) *float64 { return &f }

func TestFindNearbyOffers_FiltersByRadius(t *testing.T) {
	near := candidateAt(centerLat, centerLon)
	oneKm := candidateAt(centerLat+0.01, centerLon)
	farCity := candidateAt(39.9334, 32.8597)

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{farCity, oneKm, near}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, nil)
	require.NoError(t, err)

	got := make([]uuid.UUID, len(views))
	for i, v := range views {
		got[i] = v.ID
	}
	want := []uuid.UUID{near.ID, oneKm.ID}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestFindNearbyOffers_ExplicitRadiusNarrows(t *testing.T) {
	near := candidateAt(centerLat, centerLon)
	oneKm := candidateAt(centerLat+0.01, centerLon)

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{near, oneKm}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, ptr(500))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, near.ID, views[0].ID)
}

func TestFindNearbyOffers_RadiusCappedAtMax(t *testing.T) {
	// ~60km north of the center, inside a million-meter request but outside
	// the 50km cap.
	distant := candidateAt(centerLat+0.54, centerLon)

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{distant}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, ptr(1_000_000))
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestFindNearbyOffers_InvalidInputs(t *testing.T) {
	store := &stubDiscoveryStore{}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	_, err := q.FindNearbyOffers(context.Background(), 91.0, centerLon, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidGeoCoordinate)

	_, err = q.FindNearbyOffers(context.Background(), centerLat, -181.0, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidGeoCoordinate)

	_, err = q.FindNearbyOffers(context.Background(), centerLat, centerLon, ptr(0))
	assert.ErrorIs(t, err, errs.ErrInvalidRadius)

	_, err = q.FindNearbyOffers(context.Background(), centerLat, centerLon, ptr(-100))
	assert.ErrorIs(t, err, errs.ErrInvalidRadius)
}

func TestFindNearbyOffers_SkipsMalformedAndExpiredRows(t *testing.T) {
	good := candidateAt(centerLat, centerLon)

	malformed := candidateAt(centerLat, centerLon)
	malformed.Latitude = 95.0

	expired := builder.NewOfferBuilder().
		WithLocation(centerLat, centerLon).
		WithWindow(builder.BaseTime.Add(-2*time.Hour), builder.BaseTime.Add(-time.Hour)).
		BuildCandidate(uuid.New())

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{malformed, &expired, good}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, good.ID, views[0].ID)
}

func TestFindNearbyOffers_DistanceTieBrokenByID(t *testing.T) {
	a := candidateAt(centerLat, centerLon)
	b := candidateAt(centerLat, centerLon)

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{a, b}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Less(t, views[0].ID.String(), views[1].ID.String())
}

func TestFindNearbyOffers_AnnotatesDistanceAndWindow(t *testing.T) {
	cand := builder.NewOfferBuilder().
		WithLocation(centerLat+0.01, centerLon).
		WithWindow(builder.BaseTime.Add(-time.Hour), builder.BaseTime.Add(time.Hour)).
		BuildCandidate(uuid.New())

	store := &stubDiscoveryStore{candidates: []*queries.OfferCandidate{&cand}}
	q := newDiscovery(store, clock.NewMockClock(builder.BaseTime))

	views, err := q.FindNearbyOffers(context.Background(), centerLat, centerLon, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.InDelta(t, 1112, v.DistanceMeters, 15)
	assert.Equal(t, "1h 0min", v.RemainingLabel)
	assert.InDelta(t, 50.0, v.PercentRemaining, 0.01)
	assert.Equal(t, "warning", v.UrgencyTier)
}
