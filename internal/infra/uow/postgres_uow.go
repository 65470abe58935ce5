package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"kapkurtar/internal/infra/db"
	"kapkurtar/internal/infra/repository"
	"kapkurtar/internal/pkg/errs"
	"kapkurtar/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool         *pgxpool.Pool
	offers       *repository.OfferRepository
	reservations *repository.ReservationRepository
	outbox       *repository.OutboxRepository
	reads        *repository.CommandReads
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:         pool,
		offers:       repository.NewOfferRepository(),
		reservations: repository.NewReservationRepository(),
		outbox:       repository.NewOutboxRepository(),
		reads:        repository.NewCommandReads(),
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// per-offer serialization comes from row locks and conditional updates, not
// from the isolation level.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return u.reads
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr.Error())
			}
		}

		if !isRetryable(err) || attempt == maxRetries {
			if isRetryable(err) {
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoffWithJitter(base, attempt)):
		}
	}
	return errMaxRetriesExceeded
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeSerializationFailure ||
			pgErr.Code == pgErrCodeDeadlockDetected
	}
	return false
}

func backoffWithJitter(base time.Duration, attempt int) time.Duration {
	backoff := base << attempt

	var buf [8]byte
	jitter := time.Duration(0)
	if _, err := rand.Read(buf[:]); err == nil {
		jitter = time.Duration(binary.LittleEndian.Uint64(buf[:]) % uint64(base))
	}
	return backoff + jitter
}

type pgTx struct {
	dbtx pgx.Tx
	uow  *PostgresUoW
}

func (t *pgTx) Offers() shared.OfferRepository             { return t.uow.offers }
func (t *pgTx) Reservations() shared.ReservationRepository { return t.uow.reservations }
func (t *pgTx) Outbox() shared.OutboxRepository            { return t.uow.outbox }
func (t *pgTx) Reads() shared.CommandReads                 { return t.uow.reads }
func (t *pgTx) DB() db.DBTX                                { return t.dbtx }
