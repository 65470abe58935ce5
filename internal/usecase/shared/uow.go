package shared

import (
	"context"
	"time"

	"kapkurtar/internal/domain/event"
	"kapkurtar/internal/domain/reservation"
	"kapkurtar/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// Reads: command-side reads outside a transaction
	Reads() CommandReads
}

type Tx interface {
	Offers() OfferRepository
	Reservations() ReservationRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	// OfferByIDForUpdate row-locks the offer. This is the per-offer lock
	// every stock mutation serializes on.
	OfferByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*OfferSnapshot, error)
	ReservationByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*ReservationSnapshot, error)
	ReservationByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*ReservationSnapshot, error)
	PendingReservationsByOfferForUpdate(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID) ([]*ReservationSnapshot, error)
	// ExpiredUnmarkedOfferIDs lists offers whose window closed before now
	// and that have not been marked expired yet.
	ExpiredUnmarkedOfferIDs(ctx context.Context, dbtx db.DBTX, now time.Time) ([]uuid.UUID, error)
}

type OfferRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, snap *OfferSnapshot) error
	UpdateListing(ctx context.Context, dbtx db.DBTX, snap *OfferSnapshot) error
	// DecrementStock is the single-statement conditional decrement: it only
	// succeeds while the offer is reservable and holds at least qty units.
	DecrementStock(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID, qty int32, now time.Time) (remaining int32, ok bool, err error)
	RestoreStock(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID, qty int32, now time.Time) error
	// MarkExpired stamps expired_at once; reports false when already marked.
	MarkExpired(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID, now time.Time) (bool, error)
	SetActive(ctx context.Context, dbtx db.DBTX, offerID uuid.UUID, active bool, now time.Time) error
}

type ReservationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, res *reservation.Reservation, now time.Time) error
	// TransitionFromPending updates status only while the row is still
	// pending; reports false otherwise.
	TransitionFromPending(ctx context.Context, dbtx db.DBTX, id uuid.UUID, to reservation.Status, now time.Time) (bool, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, ev event.Event) error
}
