package repository

import (
	"context"
	"time"

	"kapkurtar/internal/domain/event"
	"kapkurtar/internal/infra"
	"kapkurtar/internal/infra/db"

	"github.com/google/uuid"
)

// OutboxRepository persists domain events in the same transaction as the
// transition that raised them. The dispatcher later drains undelivered rows,
// which is what makes emission exactly-once per transition.
type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Append(ctx context.Context, dbtx db.DBTX, ev event.Event) error {
	const query = `
		INSERT INTO event_outbox (
			id, kind, offer_id, merchant_id, reservation_id, client_id, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var reservationID, clientID *uuid.UUID
	if ev.ReservationID != uuid.Nil {
		reservationID = &ev.ReservationID
	}
	if ev.ClientID != uuid.Nil {
		clientID = &ev.ClientID
	}

	_, err := dbtx.Exec(ctx, query,
		ev.ID, ev.Kind.String(), ev.OfferID, ev.MerchantID,
		reservationID, clientID, ev.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to append outbox event", err)
	}
	return nil
}

// PendingEvents returns undispatched events oldest first.
func (r *OutboxRepository) PendingEvents(ctx context.Context, dbtx db.DBTX, limit int32) ([]event.Event, error) {
	const query = `
		SELECT id, kind, offer_id, merchant_id, reservation_id, client_id, occurred_at
		FROM event_outbox
		WHERE dispatched_at IS NULL
		ORDER BY created_at
		LIMIT $1`

	rows, err := dbtx.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list pending events", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			ev            event.Event
			kind          string
			reservationID *uuid.UUID
			clientID      *uuid.UUID
		)
		if err := rows.Scan(&ev.ID, &kind, &ev.OfferID, &ev.MerchantID, &reservationID, &clientID, &ev.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan outbox event", err)
		}
		ev.Kind = event.Kind(kind)
		if reservationID != nil {
			ev.ReservationID = *reservationID
		}
		if clientID != nil {
			ev.ClientID = *clientID
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate outbox events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkDispatched(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	const query = `
		UPDATE event_outbox
		SET dispatched_at = $2
		WHERE id = ANY($1) AND dispatched_at IS NULL`

	_, err := dbtx.Exec(ctx, query, ids, now)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to mark events dispatched", err)
	}
	return nil
}
