package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// DayEarningsStore implements storage.DayEarningsStore using ClickHouse.
type DayEarningsStore struct {
	conn *Conn
}

// NewDayEarningsStore creates a new DayEarningsStore.
func NewDayEarningsStore(conn *Conn) *DayEarningsStore {
	return &DayEarningsStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DayEarningsStore = (*DayEarningsStore)(nil)

// InsertBulk adds multiple day rows atomically. Fails entire batch on any
// duplicate (snapshot_id, wallet_id, scheme, date).
func (s *DayEarningsStore) InsertBulk(ctx context.Context, rows []*domain.DayEarningsRow) error {
	if len(rows) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		snapshotID string
		walletID   string
		scheme     domain.Scheme
		date       time.Time
	}
	seen := make(map[key]struct{}, len(rows))
	snapshots := make(map[string]struct{})
	for _, r := range rows {
		if r == nil || r.SnapshotID == "" || r.PlanID == "" || r.WalletID == "" {
			return storage.ErrInvalidInput
		}
		k := key{r.SnapshotID, r.WalletID, r.Scheme, r.Date.UTC()}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
		snapshots[r.SnapshotID] = struct{}{}
	}

	// A batch always comes from whole simulation runs, so duplicates against
	// the DB reduce to the snapshot already having rows. One count query per
	// snapshot instead of one per row.
	for snapshotID := range snapshots {
		exists, err := s.snapshotExists(ctx, snapshotID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO day_earnings (
			snapshot_id, plan_id, wallet_id, scheme, date,
			balance, earned, claimed, claimed_in_currency, gas_fees
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.SnapshotID, r.PlanID, r.WalletID, string(r.Scheme), r.Date.UTC(),
			r.Balance, r.Earned, r.Claimed, r.ClaimedInCurrency, r.GasFees,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByPlanID retrieves all day rows for a plan, ordered by date ASC.
func (s *DayEarningsStore) GetByPlanID(ctx context.Context, planID string) ([]*domain.DayEarningsRow, error) {
	query := `
		SELECT snapshot_id, plan_id, wallet_id, scheme, date,
		       balance, earned, claimed, claimed_in_currency, gas_fees
		FROM day_earnings
		WHERE plan_id = ?
		ORDER BY date ASC, wallet_id ASC, scheme ASC
	`

	rows, err := s.conn.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("query by plan id: %w", err)
	}
	defer rows.Close()

	return scanDayEarnings(rows)
}

// GetByTimeRange retrieves day rows for a plan within [start, end] (inclusive).
func (s *DayEarningsStore) GetByTimeRange(ctx context.Context, planID string, start, end time.Time) ([]*domain.DayEarningsRow, error) {
	query := `
		SELECT snapshot_id, plan_id, wallet_id, scheme, date,
		       balance, earned, claimed, claimed_in_currency, gas_fees
		FROM day_earnings
		WHERE plan_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, wallet_id ASC, scheme ASC
	`

	rows, err := s.conn.Query(ctx, query, planID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanDayEarnings(rows)
}

// snapshotExists checks if any rows exist for the given snapshot.
func (s *DayEarningsStore) snapshotExists(ctx context.Context, snapshotID string) (bool, error) {
	query := `
		SELECT count(*) FROM day_earnings
		WHERE snapshot_id = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, snapshotID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// chRows is the subset of driver.Rows the scanners need.
type chRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanDayEarnings scans multiple rows.
func scanDayEarnings(rows chRows) ([]*domain.DayEarningsRow, error) {
	var result []*domain.DayEarningsRow

	for rows.Next() {
		var r domain.DayEarningsRow
		var scheme string

		err := rows.Scan(
			&r.SnapshotID, &r.PlanID, &r.WalletID, &scheme, &r.Date,
			&r.Balance, &r.Earned, &r.Claimed, &r.ClaimedInCurrency, &r.GasFees,
		)
		if err != nil {
			return nil, fmt.Errorf("scan day earnings row: %w", err)
		}

		r.Scheme = domain.Scheme(scheme)
		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day earnings rows: %w", err)
	}

	return result, nil
}
