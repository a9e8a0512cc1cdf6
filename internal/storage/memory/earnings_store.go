package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// EarningsStore is an in-memory implementation of storage.EarningsStore.
type EarningsStore struct {
	mu   sync.RWMutex
	data map[string]*domain.EarningsSnapshot // keyed by snapshot_id
}

// NewEarningsStore creates a new in-memory earnings store.
func NewEarningsStore() *EarningsStore {
	return &EarningsStore{
		data: make(map[string]*domain.EarningsSnapshot),
	}
}

// Compile-time interface check.
var _ storage.EarningsStore = (*EarningsStore)(nil)

// Insert adds a new snapshot. Returns ErrDuplicateKey if snapshot_id exists.
func (s *EarningsStore) Insert(_ context.Context, snap *domain.EarningsSnapshot) error {
	if snap == nil || snap.SnapshotID == "" || snap.PlanID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[snap.SnapshotID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	snapCopy := *snap
	s.data[snap.SnapshotID] = &snapCopy
	return nil
}

// GetByPlanID retrieves all snapshots for a plan, ordered by computed_at ASC.
func (s *EarningsStore) GetByPlanID(_ context.Context, planID string) ([]*domain.EarningsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.EarningsSnapshot
	for _, snap := range s.data {
		if snap.PlanID == planID {
			snapCopy := *snap
			result = append(result, &snapCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ComputedAt.Equal(result[j].ComputedAt) {
			return result[i].SnapshotID < result[j].SnapshotID
		}
		return result[i].ComputedAt.Before(result[j].ComputedAt)
	})

	return result, nil
}

// GetLatest retrieves the most recent snapshot for a plan.
// Returns ErrNotFound if the plan has no snapshots.
func (s *EarningsStore) GetLatest(ctx context.Context, planID string) (*domain.EarningsSnapshot, error) {
	snaps, err := s.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, storage.ErrNotFound
	}
	return snaps[len(snaps)-1], nil
}
