package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kapkurtar/internal/domain/geo"
	"kapkurtar/internal/domain/offer"
	"kapkurtar/internal/pkg/clock"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateOfferParams struct {
	Title            string
	Description      string
	ImageURL         string
	PriceBeforeCents int64
	PriceAfterCents  int64
	Quantity         int32
	AvailableFrom    time.Time
	AvailableUntil   time.Time
	Latitude         float64
	Longitude        float64
}

type UpdateOfferParams struct {
	Title            *string
	Description      *string
	ImageURL         *string
	PriceBeforeCents *int64
	PriceAfterCents  *int64
	Quantity         *int32
	AvailableFrom    *time.Time
	AvailableUntil   *time.Time
	IsActive         *bool
}

type OfferCommands interface {
	CreateOffer(ctx context.Context, merchantID uuid.UUID, params CreateOfferParams) (uuid.UUID, error)
	UpdateOffer(ctx context.Context, offerID, merchantID uuid.UUID, params UpdateOfferParams) error
	DeactivateOffer(ctx context.Context, offerID, merchantID uuid.UUID) error
}

type offerCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewOfferCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) OfferCommands {
	return &offerCommandsImpl{
		uow:    uow,
		clock:  clk,
		logger: logger,
	}
}

func (c *offerCommandsImpl) CreateOffer(
	ctx context.Context,
	merchantID uuid.UUID,
	params CreateOfferParams,
) (uuid.UUID, error) {
	loc, err := geo.NewPoint(params.Latitude, params.Longitude)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidGeoCoordinate)
	}

	off, err := offer.NewOffer(
		merchantID,
		params.Title, params.Description, params.ImageURL,
		params.PriceBeforeCents, params.PriceAfterCents,
		params.Quantity,
		params.AvailableFrom, params.AvailableUntil,
		loc,
	)
	if err != nil {
		return uuid.Nil, mapOfferDomainErr(err)
	}

	now := c.clock.Now()
	snap := offerToSnapshot(off, now)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Offers().Create(ctx, tx.DB(), snap)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return off.ID(), nil
}

// UpdateOffer edits listing fields. Price changes never retro-modify
// already captured reservation totals; only future reservations see them.
func (c *offerCommandsImpl) UpdateOffer(
	ctx context.Context,
	offerID, merchantID uuid.UUID,
	params UpdateOfferParams,
) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			return markIfNotFound(err, errs.ErrOfferNotFound)
		}
		if snap.MerchantID != merchantID {
			return errs.ErrOfferNotFound
		}

		applyOfferPatch(snap, params)

		// Rebuild through the domain constructor so an edit can never
		// produce a listing the create path would have rejected.
		loc, err := geo.NewPoint(snap.Latitude, snap.Longitude)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidGeoCoordinate)
		}
		if _, err := offer.NewOffer(
			snap.MerchantID,
			snap.Title, snap.Description, snap.ImageURL,
			snap.PriceBeforeCents, snap.PriceAfterCents,
			snap.Quantity,
			snap.AvailableFrom, snap.AvailableUntil,
			loc,
		); err != nil {
			return mapOfferDomainErr(err)
		}

		snap.UpdatedAt = now
		return tx.Offers().UpdateListing(ctx, tx.DB(), snap)
	})
}

func (c *offerCommandsImpl) DeactivateOffer(ctx context.Context, offerID, merchantID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OfferByIDForUpdate(ctx, tx.DB(), offerID)
		if err != nil {
			return markIfNotFound(err, errs.ErrOfferNotFound)
		}
		if snap.MerchantID != merchantID {
			return errs.ErrOfferNotFound
		}
		return tx.Offers().SetActive(ctx, tx.DB(), offerID, false, now)
	})
}

func applyOfferPatch(snap *shared.OfferSnapshot, params UpdateOfferParams) {
	if params.Title != nil {
		snap.Title = *params.Title
	}
	if params.Description != nil {
		snap.Description = *params.Description
	}
	if params.ImageURL != nil {
		snap.ImageURL = *params.ImageURL
	}
	if params.PriceBeforeCents != nil {
		snap.PriceBeforeCents = *params.PriceBeforeCents
	}
	if params.PriceAfterCents != nil {
		snap.PriceAfterCents = *params.PriceAfterCents
	}
	if params.Quantity != nil {
		snap.Quantity = *params.Quantity
	}
	if params.AvailableFrom != nil {
		snap.AvailableFrom = *params.AvailableFrom
	}
	if params.AvailableUntil != nil {
		snap.AvailableUntil = *params.AvailableUntil
	}
	if params.IsActive != nil {
		snap.IsActive = *params.IsActive
	}
}

func offerToSnapshot(off *offer.Offer, now time.Time) *shared.OfferSnapshot {
	return &shared.OfferSnapshot{
		ID:               off.ID(),
		MerchantID:       off.MerchantID(),
		Title:            off.Title(),
		Description:      off.Description(),
		ImageURL:         off.ImageURL(),
		PriceBeforeCents: off.PriceBeforeCents(),
		PriceAfterCents:  off.PriceAfterCents(),
		Quantity:         off.Quantity(),
		AvailableFrom:    off.AvailableFrom(),
		AvailableUntil:   off.AvailableUntil(),
		IsActive:         off.IsActive(),
		Latitude:         off.Location().Lat(),
		Longitude:        off.Location().Lon(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func mapOfferDomainErr(err error) error {
	switch {
	case errors.Is(err, offer.ErrInvalidPrice):
		return errs.Mark(err, errs.ErrInvalidPrice)
	case errors.Is(err, offer.ErrInvalidTimeWindow):
		return errs.Mark(err, errs.ErrInvalidOfferWindow)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
