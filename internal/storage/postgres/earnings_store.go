package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// EarningsStore implements storage.EarningsStore using PostgreSQL.
type EarningsStore struct {
	pool *Pool
}

// NewEarningsStore creates a new EarningsStore.
func NewEarningsStore(pool *Pool) *EarningsStore {
	return &EarningsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EarningsStore = (*EarningsStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *EarningsStore) Insert(ctx context.Context, snap *domain.EarningsSnapshot) error {
	if snap == nil || snap.SnapshotID == "" || snap.PlanID == "" {
		return storage.ErrInvalidInput
	}

	payload, err := json.Marshal(snap.Earnings)
	if err != nil {
		return fmt.Errorf("marshal earnings payload: %w", err)
	}

	query := `
		INSERT INTO earnings_snapshots (snapshot_id, plan_id, computed_at, payload)
		VALUES ($1, $2, $3, $4)
	`

	_, err = s.pool.Exec(ctx, query, snap.SnapshotID, snap.PlanID, snap.ComputedAt, payload)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert earnings snapshot: %w", err)
	}
	return nil
}

// GetByPlanID retrieves all snapshots for a plan, ordered by computed_at ASC.
func (s *EarningsStore) GetByPlanID(ctx context.Context, planID string) ([]*domain.EarningsSnapshot, error) {
	query := `
		SELECT snapshot_id, plan_id, computed_at, payload
		FROM earnings_snapshots
		WHERE plan_id = $1
		ORDER BY computed_at ASC, snapshot_id ASC
	`

	rows, err := s.pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("get snapshots by plan id: %w", err)
	}
	defer rows.Close()

	var snaps []*domain.EarningsSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snaps, nil
}

// GetLatest retrieves the most recent snapshot for a plan.
// Returns ErrNotFound if the plan has no snapshots.
func (s *EarningsStore) GetLatest(ctx context.Context, planID string) (*domain.EarningsSnapshot, error) {
	query := `
		SELECT snapshot_id, plan_id, computed_at, payload
		FROM earnings_snapshots
		WHERE plan_id = $1
		ORDER BY computed_at DESC, snapshot_id DESC
		LIMIT 1
	`

	row := s.pool.QueryRow(ctx, query, planID)
	snap, err := scanSnapshot(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return snap, nil
}

// scanSnapshot scans a single row into an EarningsSnapshot.
func scanSnapshot(row pgx.Row) (*domain.EarningsSnapshot, error) {
	var snap domain.EarningsSnapshot
	var payload []byte

	err := row.Scan(&snap.SnapshotID, &snap.PlanID, &snap.ComputedAt, &payload)
	if err != nil {
		return nil, err
	}

	var earnings domain.PlanEarnings
	if err := json.Unmarshal(payload, &earnings); err != nil {
		return nil, fmt.Errorf("unmarshal earnings payload: %w", err)
	}
	snap.Earnings = &earnings
	return &snap, nil
}
