// Package main provides a flag-driven CLI that loads a plan file, runs both
// daily engines, and prints the result tree as JSON or persists it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fr3shw3b/dripcalc-sub000/internal/config"
	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/engine"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
	chstore "github.com/fr3shw3b/dripcalc-sub000/internal/storage/clickhouse"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage/memory"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage/migrations"
	pgstore "github.com/fr3shw3b/dripcalc-sub000/internal/storage/postgres"
)

// stores holds the storage implementations the persist path needs.
type stores struct {
	planStore        storage.PlanStore
	earningsStore    storage.EarningsStore
	dayEarningsStore storage.DayEarningsStore
}

func main() {
	planPath := flag.String("plan", "", "Path to the plan YAML file (required)")
	seed := flag.Int64("seed", 1, "Deterministic variance seed")
	out := flag.String("out", "", "Write the JSON result to this file instead of stdout")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	persist := flag.Bool("persist", false, "Persist the plan, snapshot, and flattened day rows")

	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if *planPath == "" {
		log.Fatal("--plan is required")
	}
	if *persist && !*useMemory && *postgresDSN == "" {
		log.Fatal("--persist requires --postgres-dsn (or --use-memory)")
	}

	plan, err := config.LoadPlan(*planPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load plan")
	}

	ctx := context.Background()

	snapshot, err := run(ctx, plan, *seed, *persist, *useMemory, *postgresDSN, *clickhouseDSN)
	if err != nil {
		log.WithError(err).Fatal("Simulation failed")
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("Failed to encode result")
	}

	if *out == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.WithError(err).Fatal("Failed to write result file")
	}
	log.WithField("path", *out).Info("Result written")
}

func run(ctx context.Context, plan *domain.Plan, seed int64, persist, useMemory bool, postgresDSN, clickhouseDSN string) (*domain.EarningsSnapshot, error) {
	if !persist {
		earnings, err := engine.New().Run(ctx, plan, seed)
		if err != nil {
			return nil, err
		}
		return &domain.EarningsSnapshot{
			SnapshotID: uuid.NewString(),
			PlanID:     plan.PlanID,
			ComputedAt: time.Now().UTC(),
			Earnings:   earnings,
		}, nil
	}

	st, cleanup, err := createStores(ctx, postgresDSN, clickhouseDSN, useMemory)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := st.planStore.Insert(ctx, plan); err != nil {
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("store plan: %w", err)
		}
		log.WithField("planId", plan.PlanID).Info("Plan already stored, simulating stored copy")
	}

	runner := engine.NewRunner(engine.RunnerOptions{
		PlanStore:        st.planStore,
		EarningsStore:    st.earningsStore,
		DayEarningsStore: st.dayEarningsStore,
	})
	return runner.Run(ctx, plan.PlanID, seed)
}

// createStores creates all required stores, running migrations first.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*stores, func(), error) {
	if useMemory {
		st := &stores{
			planStore:        memory.NewPlanStore(),
			earningsStore:    memory.NewEarningsStore(),
			dayEarningsStore: memory.NewDayEarningsStore(),
		}
		return st, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	st := &stores{
		planStore:     pgstore.NewPlanStore(pool),
		earningsStore: pgstore.NewEarningsStore(pool),
	}
	cleanup := func() { pool.Close() }

	// Day rows are optional analytics; skip quietly when no DSN is given.
	if clickhouseDSN != "" {
		chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
		st.dayEarningsStore = chstore.NewDayEarningsStore(chConn)
		cleanup = func() {
			chConn.Close()
			pool.Close()
		}
	}

	return st, cleanup, nil
}
