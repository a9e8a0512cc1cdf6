package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// PlanStore implements storage.PlanStore using PostgreSQL.
// Wallets and month inputs live inside the JSONB payload; the engine always
// loads a plan whole, so there is no benefit to normalizing them out.
type PlanStore struct {
	pool *Pool
}

// NewPlanStore creates a new PlanStore.
func NewPlanStore(pool *Pool) *PlanStore {
	return &PlanStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PlanStore = (*PlanStore)(nil)

// Insert adds a new plan. Returns ErrDuplicateKey if plan_id exists.
func (s *PlanStore) Insert(ctx context.Context, p *domain.Plan) error {
	if p == nil || p.PlanID == "" {
		return storage.ErrInvalidInput
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan payload: %w", err)
	}

	query := `
		INSERT INTO plans (plan_id, label, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = s.pool.Exec(ctx, query, p.PlanID, p.Label, payload, p.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by its ID. Returns ErrNotFound if not exists.
func (s *PlanStore) GetByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `
		SELECT payload
		FROM plans
		WHERE plan_id = $1
	`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, planID).Scan(&payload)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get plan by id: %w", err)
	}

	var p domain.Plan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan payload: %w", err)
	}
	return &p, nil
}

// List retrieves all plans, ordered by created_at ASC.
func (s *PlanStore) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `
		SELECT payload
		FROM plans
		ORDER BY created_at ASC, plan_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		var p domain.Plan
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("unmarshal plan payload: %w", err)
		}
		plans = append(plans, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}

	return plans, nil
}
