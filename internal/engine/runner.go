package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/faucet"
	"github.com/fr3shw3b/dripcalc-sub000/internal/garden"
	"github.com/fr3shw3b/dripcalc-sub000/internal/observability"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
)

// Runner loads a plan from storage, simulates it, and persists the result as
// a new snapshot plus flattened day rows.
type Runner struct {
	engine           *Engine
	planStore        storage.PlanStore
	earningsStore    storage.EarningsStore
	dayEarningsStore storage.DayEarningsStore
	metrics          *observability.Metrics
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	PlanStore        storage.PlanStore
	EarningsStore    storage.EarningsStore
	DayEarningsStore storage.DayEarningsStore

	// Metrics defaults to observability.DefaultMetrics when nil.
	Metrics *observability.Metrics
}

// NewRunner creates a runner.
func NewRunner(opts RunnerOptions) *Runner {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.DefaultMetrics
	}
	return &Runner{
		engine:           New(),
		planStore:        opts.PlanStore,
		earningsStore:    opts.EarningsStore,
		dayEarningsStore: opts.DayEarningsStore,
		metrics:          metrics,
	}
}

// Run executes a full simulation for a stored plan.
// Steps:
//  1. Load plan by ID
//  2. Run both daily engines deterministically under the given seed
//  3. Persist the snapshot
//  4. Persist flattened day rows for analytical queries
//
// The EarningsStore and DayEarningsStore are optional; when nil the matching
// persistence step is skipped and the result is still returned.
func (r *Runner) Run(ctx context.Context, planID string, seed int64) (*domain.EarningsSnapshot, error) {
	plan, err := r.planStore.GetByID(ctx, planID)
	if err != nil {
		return nil, err // propagates storage.ErrNotFound
	}

	started := time.Now()
	earnings, err := r.engine.Run(ctx, plan, seed)
	if err != nil {
		r.metrics.RecordSimulation("error", time.Since(started).Seconds())
		switch {
		case errors.Is(err, ErrValidation):
			r.metrics.ValidationFailures.Inc()
		case errors.Is(err, faucet.ErrSimulationDiverged), errors.Is(err, garden.ErrSimulationDiverged):
			r.metrics.DivergedSimulations.Inc()
		}
		return nil, err
	}
	r.metrics.RecordSimulation("ok", time.Since(started).Seconds())
	r.metrics.WalletsSimulated.Add(float64(len(plan.Wallets)))

	snapshot := &domain.EarningsSnapshot{
		SnapshotID: uuid.NewString(),
		PlanID:     plan.PlanID,
		ComputedAt: time.Now().UTC(),
		Earnings:   earnings,
	}

	rows := domain.FlattenDays(snapshot.SnapshotID, plan.PlanID, earnings)
	daysByScheme := make(map[domain.Scheme]int)
	for _, row := range rows {
		daysByScheme[row.Scheme]++
	}
	for scheme, count := range daysByScheme {
		r.metrics.DaysSimulated.WithLabelValues(string(scheme)).Add(float64(count))
	}

	if r.earningsStore != nil {
		queryStart := time.Now()
		err := r.earningsStore.Insert(ctx, snapshot)
		r.metrics.RecordDBQuery("postgres", "insert_snapshot", time.Since(queryStart).Seconds(), err)
		if err != nil {
			return nil, err
		}
		r.metrics.SnapshotsPersisted.Inc()
	}

	if r.dayEarningsStore != nil {
		queryStart := time.Now()
		err := r.dayEarningsStore.InsertBulk(ctx, rows)
		r.metrics.RecordDBQuery("clickhouse", "insert_day_rows", time.Since(queryStart).Seconds(), err)
		if err != nil {
			return nil, err
		}
		r.metrics.DayRowsPersisted.Add(float64(len(rows)))
	}

	r.metrics.LastSuccessfulRun.Set(float64(time.Now().Unix()))
	return snapshot, nil
}
