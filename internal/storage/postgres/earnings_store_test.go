package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage/postgres"
)

func buildSnapshot(snapshotID, planID string, computedAt time.Time) *domain.EarningsSnapshot {
	return &domain.EarningsSnapshot{
		SnapshotID: snapshotID,
		PlanID:     planID,
		ComputedAt: computedAt,
		Earnings: &domain.PlanEarnings{
			PlanID: planID,
			Seed:   7,
			Info: domain.OverviewInfo{
				TotalClaimed:           120.5,
				TotalClaimedInCurrency: 3500,
			},
		},
	}
}

func TestEarningsStore_InsertAndGetLatest(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewEarningsStore(pool)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, buildSnapshot("snap-old", "plan-1", base)))
	require.NoError(t, store.Insert(ctx, buildSnapshot("snap-new", "plan-1", base.Add(time.Hour))))

	latest, err := store.GetLatest(ctx, "plan-1")
	require.NoError(t, err)

	assert.Equal(t, "snap-new", latest.SnapshotID)
	assert.Equal(t, "plan-1", latest.PlanID)
	require.NotNil(t, latest.Earnings)
	assert.Equal(t, int64(7), latest.Earnings.Seed)
	assert.Equal(t, 120.5, latest.Earnings.Info.TotalClaimed)
}

func TestEarningsStore_GetByPlanIDOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewEarningsStore(pool)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, buildSnapshot("snap-2", "plan-1", base.Add(time.Minute))))
	require.NoError(t, store.Insert(ctx, buildSnapshot("snap-1", "plan-1", base)))
	require.NoError(t, store.Insert(ctx, buildSnapshot("snap-other", "plan-2", base)))

	snaps, err := store.GetByPlanID(ctx, "plan-1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "snap-1", snaps[0].SnapshotID)
	assert.Equal(t, "snap-2", snaps[1].SnapshotID)
}

func TestEarningsStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewEarningsStore(pool)
	ctx := context.Background()

	snap := buildSnapshot("snap-dup", "plan-1", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, snap))

	err := store.Insert(ctx, snap)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestEarningsStore_GetLatestNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewEarningsStore(pool)
	ctx := context.Background()

	_, err := store.GetLatest(ctx, "plan-without-snapshots")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
