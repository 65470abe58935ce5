//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestMerchant(t *testing.T, db DBLike, businessName string, lat, lng float64) uuid.UUID {
	t.Helper()

	merchantID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO merchants (id, business_name, street, city, postal_code, phone, latitude, longitude)
		 VALUES ($1, $2, 'Istiklal Cd. 12', 'Istanbul', '34000', '+90 212 000 0000', $3, $4)`,
		merchantID, businessName, lat, lng)
	require.NoError(t, err)

	return merchantID
}

func CreateTestOffer(t *testing.T, db DBLike, merchantID uuid.UUID, title string, quantity int32, from, until time.Time, lat, lng float64) uuid.UUID {
	t.Helper()

	offerID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO offers (id, merchant_id, title, description, price_before_cents, price_after_cents,
		                     quantity, available_from, available_until, is_active, latitude, longitude)
		 VALUES ($1, $2, $3, 'Surprise bag', 5000, 2000, $4, $5, $6, true, $7, $8)`,
		offerID, merchantID, title, quantity, from, until, lat, lng)
	require.NoError(t, err)

	return offerID
}

func CreateTestReservation(t *testing.T, db DBLike, offerID, clientID uuid.UUID, quantity int32, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO reservations (id, offer_id, client_id, quantity, total_price_cents, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		reservationID, offerID, clientID, quantity, int64(quantity)*2000, status)
	require.NoError(t, err)

	return reservationID
}

func CountOutboxEvents(t *testing.T, db DBLike, kind string, offerID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM event_outbox WHERE kind = $1 AND offer_id = $2", kind, offerID).Scan(&count)
	require.NoError(t, err)

	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between test cases
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
