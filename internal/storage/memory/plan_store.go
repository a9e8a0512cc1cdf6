package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// PlanStore is an in-memory implementation of storage.PlanStore.
type PlanStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Plan // keyed by plan_id
}

// NewPlanStore creates a new in-memory plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{
		data: make(map[string]*domain.Plan),
	}
}

// Compile-time interface check.
var _ storage.PlanStore = (*PlanStore)(nil)

// Insert adds a new plan. Returns ErrDuplicateKey if plan_id exists.
func (s *PlanStore) Insert(_ context.Context, p *domain.Plan) error {
	if p == nil || p.PlanID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.PlanID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	planCopy := *p
	s.data[p.PlanID] = &planCopy
	return nil
}

// GetByID retrieves a plan by its ID. Returns ErrNotFound if not exists.
func (s *PlanStore) GetByID(_ context.Context, planID string) (*domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[planID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	planCopy := *p
	return &planCopy, nil
}

// List retrieves all plans, ordered by created_at ASC.
func (s *PlanStore) List(_ context.Context) ([]*domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Plan
	for _, p := range s.data {
		planCopy := *p
		result = append(result, &planCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].PlanID < result[j].PlanID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
