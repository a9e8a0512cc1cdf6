package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

func testDayRow(snapshotID, walletID string, date time.Time) *domain.DayEarningsRow {
	return &domain.DayEarningsRow{
		SnapshotID:        snapshotID,
		PlanID:            "plan-1",
		WalletID:          walletID,
		Scheme:            domain.SchemeFaucet,
		Date:              date,
		Balance:           1000,
		Earned:            10,
		Claimed:           5,
		ClaimedInCurrency: 250,
		GasFees:           1,
	}
}

func TestDayEarningsStore_InsertBulkAndGetByPlanID(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []*domain.DayEarningsRow{
		testDayRow("snap-1", "w1", base.AddDate(0, 0, 2)),
		testDayRow("snap-1", "w1", base),
		testDayRow("snap-1", "w1", base.AddDate(0, 0, 1)),
	}

	if err := store.InsertBulk(ctx, rows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPlanID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByPlanID failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Errorf("Rows not ordered by date: %v before %v", got[i].Date, got[i-1].Date)
		}
	}
}

func TestDayEarningsStore_GetByTimeRange(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var rows []*domain.DayEarningsRow
	for i := 0; i < 10; i++ {
		rows = append(rows, testDayRow("snap-1", "w1", base.AddDate(0, 0, i)))
	}
	if err := store.InsertBulk(ctx, rows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	// Inclusive on both ends
	got, err := store.GetByTimeRange(ctx, "plan-1", base.AddDate(0, 0, 2), base.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(got))
	}
	if !got[0].Date.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("First row date: got %v, want %v", got[0].Date, base.AddDate(0, 0, 2))
	}
	if !got[3].Date.Equal(base.AddDate(0, 0, 5)) {
		t.Errorf("Last row date: got %v, want %v", got[3].Date, base.AddDate(0, 0, 5))
	}
}

func TestDayEarningsStore_DuplicateInBatch(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []*domain.DayEarningsRow{
		testDayRow("snap-1", "w1", date),
		testDayRow("snap-1", "w1", date),
	}

	err := store.InsertBulk(ctx, rows)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Failed batch must not be partially applied
	got, err := store.GetByPlanID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByPlanID failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no rows after failed batch, got %d", len(got))
	}
}

func TestDayEarningsStore_DuplicateAgainstExisting(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := store.InsertBulk(ctx, []*domain.DayEarningsRow{testDayRow("snap-1", "w1", date)}); err != nil {
		t.Fatalf("First InsertBulk failed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.DayEarningsRow{testDayRow("snap-1", "w1", date)})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	// Same wallet and date under a new snapshot is fine
	if err := store.InsertBulk(ctx, []*domain.DayEarningsRow{testDayRow("snap-2", "w1", date)}); err != nil {
		t.Errorf("Insert under new snapshot failed: %v", err)
	}
}

func TestDayEarningsStore_SchemesKeyedSeparately(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	faucetRow := testDayRow("snap-1", "w1", date)
	gardenRow := testDayRow("snap-1", "w1", date)
	gardenRow.Scheme = domain.SchemeGarden

	if err := store.InsertBulk(ctx, []*domain.DayEarningsRow{faucetRow, gardenRow}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPlanID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByPlanID failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(got))
	}
}

func TestDayEarningsStore_EmptyBatch(t *testing.T) {
	store := NewDayEarningsStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, nil); err != nil {
		t.Errorf("Empty batch should be a no-op, got %v", err)
	}
}
