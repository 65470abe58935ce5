//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"kapkurtar/internal/domain/event"
	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work mirroring the Postgres semantics the commands rely
// on: the conditional decrement, the once-only expiry mark, and pending-only
// status transitions.
type fakeUoW struct {
	offers       map[uuid.UUID]*shared.OfferSnapshot
	reservations map[uuid.UUID]*shared.ReservationSnapshot
	outbox       []event.Event
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		offers:       make(map[uuid.UUID]*shared.OfferSnapshot),
		reservations: make(map[uuid.UUID]*shared.ReservationSnapshot),
	}
}

func (u *fakeUoW) putOffer(snap shared.OfferSnapshot) {
	u.offers[snap.ID] = &snap
}

func (u *fakeUoW) putReservation(snap shared.ReservationSnapshot) {
	u.reservations[snap.ID] = &snap
}

func (u *fakeUoW) eventKinds() []event.Kind {
	kinds := make([]event.Kind, len(u.outbox))
	for i, ev := range u.outbox {
		kinds[i] = ev.Kind
	}
	return kinds
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{uow: u})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{uow: u}
}

type fakeTx struct {
	uow *fakeUoW
}

func (t *fakeTx) Offers() shared.OfferRepository             { return &fakeOfferRepo{uow: t.uow} }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{uow: t.uow} }
func (t *fakeTx) Outbox() shared.OutboxRepository            { return &fakeOutboxRepo{uow: t.uow} }
func (t *fakeTx) Reads() shared.CommandReads                 { return &fakeReads{uow: t.uow} }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeReads struct {
	uow *fakeUoW
}

func (r *fakeReads) OfferByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.OfferSnapshot, error) {
	snap, ok := r.uow.offers[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) ReservationByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.ReservationByID(ctx, dbtx, id)
}

func (r *fakeReads) ReservationByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, ok := r.uow.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) PendingReservationsByOfferForUpdate(_ context.Context, _ db.DBTX, offerID uuid.UUID) ([]*shared.ReservationSnapshot, error) {
	var out []*shared.ReservationSnapshot
	for _, snap := range r.uow.reservations {
		if snap.OfferID == offerID && snap.Status == reservation.StatusPending {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakeReads) ExpiredUnmarkedOfferIDs(_ context.Context, _ db.DBTX, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, snap := range r.uow.offers {
		if snap.ExpiredAt == nil && !now.Before(snap.AvailableUntil) {
			ids = append(ids, snap.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

type fakeOfferRepo struct {
	uow *fakeUoW
}

func (f *fakeOfferRepo) Create(_ context.Context, _ db.DBTX, snap *shared.OfferSnapshot) error {
	cp := *snap
	f.uow.offers[snap.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) UpdateListing(_ context.Context, _ db.DBTX, snap *shared.OfferSnapshot) error {
	if _, ok := f.uow.offers[snap.ID]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	cp := *snap
	f.uow.offers[snap.ID] = &cp
	return nil
}

func (f *fakeOfferRepo) DecrementStock(_ context.Context, _ db.DBTX, offerID uuid.UUID, qty int32, now time.Time) (int32, bool, error) {
	snap, ok := f.uow.offers[offerID]
	if !ok {
		return 0, false, nil
	}
	reservable := snap.IsActive &&
		snap.ExpiredAt == nil &&
		snap.Quantity >= qty &&
		!now.Before(snap.AvailableFrom) &&
		now.Before(snap.AvailableUntil)
	if !reservable {
		return 0, false, nil
	}
	snap.Quantity -= qty
	return snap.Quantity, true, nil
}

func (f *fakeOfferRepo) RestoreStock(_ context.Context, _ db.DBTX, offerID uuid.UUID, qty int32, _ time.Time) error {
	snap, ok := f.uow.offers[offerID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	snap.Quantity += qty
	return nil
}

func (f *fakeOfferRepo) MarkExpired(_ context.Context, _ db.DBTX, offerID uuid.UUID, now time.Time) (bool, error) {
	snap, ok := f.uow.offers[offerID]
	if !ok {
		return false, nil
	}
	if snap.ExpiredAt != nil || now.Before(snap.AvailableUntil) {
		return false, nil
	}
	ts := now
	snap.ExpiredAt = &ts
	return true, nil
}

func (f *fakeOfferRepo) SetActive(_ context.Context, _ db.DBTX, offerID uuid.UUID, active bool, _ time.Time) error {
	snap, ok := f.uow.offers[offerID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "offer not found")
	}
	snap.IsActive = active
	return nil
}

type fakeReservationRepo struct {
	uow *fakeUoW
}

func (f *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation, now time.Time) error {
	f.uow.reservations[res.ID()] = &shared.ReservationSnapshot{
		ID:              res.ID(),
		OfferID:         res.OfferID(),
		ClientID:        res.ClientID(),
		Quantity:        res.Quantity(),
		TotalPriceCents: res.TotalPriceCents(),
		Status:          res.Status(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return nil
}

func (f *fakeReservationRepo) TransitionFromPending(_ context.Context, _ db.DBTX, id uuid.UUID, to reservation.Status, now time.Time) (bool, error) {
	snap, ok := f.uow.reservations[id]
	if !ok || snap.Status != reservation.StatusPending {
		return false, nil
	}
	snap.Status = to
	snap.UpdatedAt = now
	return true, nil
}

type fakeOutboxRepo struct {
	uow *fakeUoW
}

func (f *fakeOutboxRepo) Append(_ context.Context, _ db.DBTX, ev event.Event) error {
	f.uow.outbox = append(f.uow.outbox, ev)
	return nil
}
