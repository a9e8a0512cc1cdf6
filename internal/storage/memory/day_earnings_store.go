package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// DayEarningsStore is an in-memory implementation of storage.DayEarningsStore.
type DayEarningsStore struct {
	mu   sync.RWMutex
	data map[dayKey]*domain.DayEarningsRow
}

type dayKey struct {
	snapshotID string
	walletID   string
	scheme     domain.Scheme
	date       time.Time
}

// NewDayEarningsStore creates a new in-memory day earnings store.
func NewDayEarningsStore() *DayEarningsStore {
	return &DayEarningsStore{
		data: make(map[dayKey]*domain.DayEarningsRow),
	}
}

// Compile-time interface check.
var _ storage.DayEarningsStore = (*DayEarningsStore)(nil)

// InsertBulk adds multiple day rows atomically. Fails entire batch on any
// duplicate (snapshot_id, wallet_id, scheme, date).
func (s *DayEarningsStore) InsertBulk(_ context.Context, rows []*domain.DayEarningsRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if r == nil || r.SnapshotID == "" || r.PlanID == "" || r.WalletID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the full batch before mutating anything
	seen := make(map[dayKey]struct{}, len(rows))
	for _, r := range rows {
		k := keyFor(r)
		if _, dup := seen[k]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, r := range rows {
		rowCopy := *r
		s.data[keyFor(r)] = &rowCopy
	}
	return nil
}

// GetByPlanID retrieves all day rows for a plan, ordered by date ASC.
func (s *DayEarningsStore) GetByPlanID(_ context.Context, planID string) ([]*domain.DayEarningsRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DayEarningsRow
	for _, r := range s.data {
		if r.PlanID == planID {
			rowCopy := *r
			result = append(result, &rowCopy)
		}
	}

	sortDayRows(result)
	return result, nil
}

// GetByTimeRange retrieves day rows for a plan within [start, end] (inclusive).
func (s *DayEarningsStore) GetByTimeRange(_ context.Context, planID string, start, end time.Time) ([]*domain.DayEarningsRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DayEarningsRow
	for _, r := range s.data {
		if r.PlanID != planID {
			continue
		}
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		rowCopy := *r
		result = append(result, &rowCopy)
	}

	sortDayRows(result)
	return result, nil
}

func keyFor(r *domain.DayEarningsRow) dayKey {
	return dayKey{r.SnapshotID, r.WalletID, r.Scheme, r.Date.UTC()}
}

func sortDayRows(rows []*domain.DayEarningsRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		if rows[i].WalletID != rows[j].WalletID {
			return rows[i].WalletID < rows[j].WalletID
		}
		return rows[i].Scheme < rows[j].Scheme
	})
}
