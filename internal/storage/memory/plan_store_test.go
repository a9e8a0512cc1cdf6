package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

func testPlan(id string, createdAt time.Time) *domain.Plan {
	return &domain.Plan{
		PlanID: id,
		Label:  "plan " + id,
		Config: domain.PlanConfig{
			MinWalletDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			MaxWalletDate: time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC),
			FinalYear:     2030,
		},
		Faucet:    domain.DefaultFaucetSettings(),
		Garden:    domain.DefaultGardenSettings(),
		CreatedAt: createdAt,
	}
}

func TestPlanStore_InsertAndGet(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	p := testPlan("plan-1", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	err := store.Insert(ctx, p)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.PlanID != p.PlanID {
		t.Errorf("PlanID mismatch: got %s, want %s", got.PlanID, p.PlanID)
	}
	if got.Label != p.Label {
		t.Errorf("Label mismatch: got %s, want %s", got.Label, p.Label)
	}
	if got.Config.FinalYear != p.Config.FinalYear {
		t.Errorf("FinalYear mismatch: got %d, want %d", got.Config.FinalYear, p.Config.FinalYear)
	}
}

func TestPlanStore_DuplicateKey(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	p := testPlan("plan-1", time.Now())

	if err := store.Insert(ctx, p); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, p)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestPlanStore_NotFound(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPlanStore_InvalidInput(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil plan, got %v", err)
	}
	if err := store.Insert(ctx, &domain.Plan{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty plan id, got %v", err)
	}
}

func TestPlanStore_ListOrdered(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []*domain.Plan{
		testPlan("plan-c", base.Add(2*time.Hour)),
		testPlan("plan-a", base),
		testPlan("plan-b", base.Add(time.Hour)),
	} {
		if err := store.Insert(ctx, p); err != nil {
			t.Fatalf("Insert %s failed: %v", p.PlanID, err)
		}
	}

	plans, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("Expected 3 plans, got %d", len(plans))
	}

	want := []string{"plan-a", "plan-b", "plan-c"}
	for i, id := range want {
		if plans[i].PlanID != id {
			t.Errorf("Position %d: got %s, want %s", i, plans[i].PlanID, id)
		}
	}
}

func TestPlanStore_CopyOnRead(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	p := testPlan("plan-1", time.Now())
	if err := store.Insert(ctx, p); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	got.Label = "mutated"

	again, err := store.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("Second GetByID failed: %v", err)
	}
	if again.Label == "mutated" {
		t.Error("Mutation of returned plan leaked into the store")
	}
}

func TestPlanStore_ConcurrentAccess(t *testing.T) {
	store := NewPlanStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := testPlan(string(rune('a'+i)), time.Now())
			if err := store.Insert(ctx, p); err != nil {
				t.Errorf("Insert failed: %v", err)
			}
			if _, err := store.List(ctx); err != nil {
				t.Errorf("List failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	plans, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plans) != 20 {
		t.Errorf("Expected 20 plans, got %d", len(plans))
	}
}
