package storage

import (
	"context"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

// PlanStore provides access to plans storage.
type PlanStore interface {
	// Insert adds a new plan. Returns ErrDuplicateKey if plan_id exists.
	Insert(ctx context.Context, p *domain.Plan) error

	// GetByID retrieves a plan by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, planID string) (*domain.Plan, error)

	// List retrieves all plans, ordered by created_at ASC.
	List(ctx context.Context) ([]*domain.Plan, error)
}

// EarningsStore provides access to earnings_snapshots storage.
type EarningsStore interface {
	// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
	Insert(ctx context.Context, snap *domain.EarningsSnapshot) error

	// GetByPlanID retrieves all snapshots for a plan, ordered by computed_at ASC.
	GetByPlanID(ctx context.Context, planID string) ([]*domain.EarningsSnapshot, error)

	// GetLatest retrieves the most recent snapshot for a plan.
	// Returns ErrNotFound if the plan has no snapshots.
	GetLatest(ctx context.Context, planID string) (*domain.EarningsSnapshot, error)
}

// DayEarningsStore provides access to flattened per-day earnings storage.
type DayEarningsStore interface {
	// InsertBulk adds multiple day rows atomically. Fails entire batch on any
	// duplicate (snapshot_id, wallet_id, scheme, date).
	InsertBulk(ctx context.Context, rows []*domain.DayEarningsRow) error

	// GetByPlanID retrieves all day rows for a plan, ordered by date ASC.
	GetByPlanID(ctx context.Context, planID string) ([]*domain.DayEarningsRow, error)

	// GetByTimeRange retrieves day rows for a plan within [start, end] (inclusive).
	GetByTimeRange(ctx context.Context, planID string, start, end time.Time) ([]*domain.DayEarningsRow, error)
}
