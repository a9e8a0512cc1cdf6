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

func buildPlan(id string) *domain.Plan {
	reinvest := 0.6
	return &domain.Plan{
		PlanID: id,
		Label:  "test plan",
		Config: domain.PlanConfig{
			MinWalletDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			MaxWalletDate: time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC),
			FinalYear:     2030,
		},
		Faucet: domain.DefaultFaucetSettings(),
		Garden: domain.DefaultGardenSettings(),
		Wallets: []*domain.Wallet{
			{
				WalletID:  "wallet-1",
				Label:     "main",
				StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				MonthInputs: map[domain.MonthKey]domain.MonthInput{
					domain.MonthKey("01/03/2024"): {
						Reinvest: &reinvest,
						Deposits: []domain.Deposit{
							{
								DepositID:        "dep-1",
								DayOfMonth:       5,
								Timestamp:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
								AmountInCurrency: 100,
							},
						},
					},
				},
			},
		},
		CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestPlanStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPlanStore(pool)
	ctx := context.Background()

	plan := buildPlan("plan-pg-001")

	err := store.Insert(ctx, plan)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "plan-pg-001")
	require.NoError(t, err)

	assert.Equal(t, plan.PlanID, retrieved.PlanID)
	assert.Equal(t, plan.Label, retrieved.Label)
	assert.Equal(t, plan.Config.FinalYear, retrieved.Config.FinalYear)
	assert.Equal(t, plan.Faucet.DailyCompound, retrieved.Faucet.DailyCompound)
	require.Len(t, retrieved.Wallets, 1)
	assert.Equal(t, "wallet-1", retrieved.Wallets[0].WalletID)

	// Month inputs survive the JSONB round trip with their override pointers
	input, ok := retrieved.Wallets[0].MonthInputs[domain.MonthKey("01/03/2024")]
	require.True(t, ok)
	require.NotNil(t, input.Reinvest)
	assert.Equal(t, 0.6, *input.Reinvest)
	require.Len(t, input.Deposits, 1)
	assert.Equal(t, 100.0, input.Deposits[0].AmountInCurrency)
}

func TestPlanStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPlanStore(pool)
	ctx := context.Background()

	plan := buildPlan("plan-pg-dup")

	err := store.Insert(ctx, plan)
	require.NoError(t, err)

	err = store.Insert(ctx, plan)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPlanStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPlanStore(pool)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPlanStore_ListOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPlanStore(pool)
	ctx := context.Background()

	early := buildPlan("plan-early")
	early.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := buildPlan("plan-late")
	late.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, late))
	require.NoError(t, store.Insert(ctx, early))

	plans, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "plan-early", plans[0].PlanID)
	assert.Equal(t, "plan-late", plans[1].PlanID)
}
