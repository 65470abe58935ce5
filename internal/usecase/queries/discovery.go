package queries

import (
	"bytes"
	"context"
	"log/slog"
	"sort"

	"kapkurtar/internal/domain/geo"
	"kapkurtar/internal/domain/offer"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/config"
	"kapkurtar/internal/pkg/errs"
)

// DiscoveryReadStore fetches reservable offer candidates joined with
// merchant display data. Reads may be slightly stale; the ledger's
// conditional decrement is the authority on stock.
type DiscoveryReadStore interface {
	ReservableOffers(ctx context.Context) ([]*OfferCandidate, error)
}

type DiscoveryQueries interface {
	// FindNearbyOffers returns live, in-stock offers within radiusMeters of
	// the client position, ordered by distance (ties broken by offer id).
	// A nil radius applies the configured default. An empty result is a
	// valid outcome, not an error.
	FindNearbyOffers(ctx context.Context, lat, lon float64, radiusMeters *float64) ([]*NearbyOfferView, error)
}

type discoveryQueriesImpl struct {
	store  DiscoveryReadStore
	cfg    config.DiscoveryConfig
	clock  clock.Clock
	logger *slog.Logger
}

func NewDiscoveryQueries(store DiscoveryReadStore, cfg config.DiscoveryConfig, clk clock.Clock, logger *slog.Logger) DiscoveryQueries {
	return &discoveryQueriesImpl{
		store:  store,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

func (q *discoveryQueriesImpl) FindNearbyOffers(
	ctx context.Context,
	lat, lon float64,
	radiusMeters *float64,
) ([]*NearbyOfferView, error) {
	center, err := geo.NewPoint(lat, lon)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidGeoCoordinate)
	}

	radius := q.cfg.DefaultRadiusMeters
	if radiusMeters != nil {
		radius = *radiusMeters
	}
	if radius <= 0 {
		return nil, errs.ErrInvalidRadius
	}
	if q.cfg.MaxRadiusMeters > 0 && radius > q.cfg.MaxRadiusMeters {
		radius = q.cfg.MaxRadiusMeters
	}

	candidates, err := q.store.ReservableOffers(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	views := make([]*NearbyOfferView, 0, len(candidates))
	for _, cand := range candidates {
		loc, err := geo.NewPoint(cand.Latitude, cand.Longitude)
		if err != nil {
			// Bad coordinates on a stored row must not break discovery for
			// everyone else.
			q.logger.Warn("discovery skipped offer with malformed location",
				"offer_id", cand.ID.String(),
				"error", err.Error())
			continue
		}

		distance := geo.DistanceMeters(loc, center)
		if distance > radius {
			continue
		}

		window := offer.AnnotateWindow(cand.AvailableFrom, cand.AvailableUntil, now)
		if window.Expired {
			// The store's reservable filter ran at query time; the window
			// may have closed since.
			continue
		}

		views = append(views, &NearbyOfferView{
			ID:               cand.ID,
			Merchant:         cand.Merchant,
			Title:            cand.Title,
			Description:      cand.Description,
			ImageURL:         cand.ImageURL,
			PriceBeforeCents: cand.PriceBeforeCents,
			PriceAfterCents:  cand.PriceAfterCents,
			Quantity:         cand.Quantity,
			AvailableFrom:    cand.AvailableFrom,
			AvailableUntil:   cand.AvailableUntil,
			Latitude:         cand.Latitude,
			Longitude:        cand.Longitude,
			DistanceMeters:   distance,
			RemainingLabel:   window.Label,
			PercentRemaining: window.PercentRemaining,
			UrgencyTier:      window.Tier.String(),
		})
	}

	// Deterministic order: distance ascending, offer id as the tie-break.
	// Insertion order is not guaranteed stable across backends.
	sort.Slice(views, func(i, j int) bool {
		if views[i].DistanceMeters != views[j].DistanceMeters {
			return views[i].DistanceMeters < views[j].DistanceMeters
		}
		return bytes.Compare(views[i].ID[:], views[j].ID[:]) < 0
	})

	return views, nil
}
