// Package main provides the HTTP projection service: a plan bundle goes in,
// a complete result tree comes out. Simulation runs share no mutable state,
// so concurrent requests need no coordination beyond the storage layer.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fr3shw3b/dripcalc-sub000/internal/config"
	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/engine"
	"github.com/fr3shw3b/dripcalc-sub000/internal/faucet"
	"github.com/fr3shw3b/dripcalc-sub000/internal/garden"
	"github.com/fr3shw3b/dripcalc-sub000/internal/observability"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage"
	chstore "github.com/fr3shw3b/dripcalc-sub000/internal/storage/clickhouse"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage/memory"
	"github.com/fr3shw3b/dripcalc-sub000/internal/storage/migrations"
	pgstore "github.com/fr3shw3b/dripcalc-sub000/internal/storage/postgres"
)

// Server holds the HTTP surface and its dependencies.
type Server struct {
	cfg    *config.Config
	engine *engine.Engine
	runner *engine.Runner

	planStore        storage.PlanStore
	earningsStore    storage.EarningsStore
	dayEarningsStore storage.DayEarningsStore
}

// simulateRequest is the POST /simulate body: a complete plan bundle plus
// run options.
type simulateRequest struct {
	Plan *domain.Plan `json:"plan"`
	Seed *int64       `json:"seed,omitempty"`

	// Persist stores the plan, snapshot, and day rows before responding.
	Persist bool `json:"persist,omitempty"`
}

func main() {
	configPath := flag.String("config", os.Getenv("DRIPCALC_CONFIG"), "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid config")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, cleanup, err := newServer(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create server")
	}
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", server.handleSimulate)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
		cancel()
	}()

	log.WithField("addr", cfg.Server.ListenAddr).Info("Listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server error")
	}
	log.Info("Shutdown complete")
}

// newServer wires stores and the engine according to config.
func newServer(ctx context.Context, cfg *config.Config) (*Server, func(), error) {
	s := &Server{
		cfg:    cfg,
		engine: engine.New(),
	}
	cleanup := func() {}

	if cfg.Database.UseMemory {
		s.planStore = memory.NewPlanStore()
		s.earningsStore = memory.NewEarningsStore()
		s.dayEarningsStore = memory.NewDayEarningsStore()
	} else {
		pool, err := pgstore.NewPool(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		s.planStore = pgstore.NewPlanStore(pool)
		s.earningsStore = pgstore.NewEarningsStore(pool)
		cleanup = func() { pool.Close() }

		if cfg.Database.ClickhouseDSN != "" {
			chConn, err := migrations.RunClickhouseMigrations(ctx, cfg.Database.ClickhouseDSN)
			if err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
			}
			s.dayEarningsStore = chstore.NewDayEarningsStore(chConn)
			cleanup = func() {
				chConn.Close()
				pool.Close()
			}
		}
	}

	s.runner = engine.NewRunner(engine.RunnerOptions{
		PlanStore:        s.planStore,
		EarningsStore:    s.earningsStore,
		DayEarningsStore: s.dayEarningsStore,
	})
	return s, cleanup, nil
}

// handleSimulate runs a complete simulation for the posted plan bundle.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Plan == nil {
		http.Error(w, "plan is required", http.StatusBadRequest)
		return
	}
	if req.Plan.PlanID == "" {
		req.Plan.PlanID = uuid.NewString()
	}

	seed := s.cfg.Simulation.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	snapshot, err := s.simulate(r.Context(), &req, seed)
	if err != nil {
		status := statusFor(err)
		log.WithError(err).WithFields(log.Fields{
			"planId": req.Plan.PlanID,
			"status": status,
		}).Warn("Simulation request failed")
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) simulate(ctx context.Context, req *simulateRequest, seed int64) (*domain.EarningsSnapshot, error) {
	if req.Persist {
		if err := s.planStore.Insert(ctx, req.Plan); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("store plan: %w", err)
		}
		return s.runner.Run(ctx, req.Plan.PlanID, seed)
	}

	earnings, err := s.engine.Run(ctx, req.Plan, seed)
	if err != nil {
		return nil, err
	}
	return &domain.EarningsSnapshot{
		SnapshotID: uuid.NewString(),
		PlanID:     req.Plan.PlanID,
		ComputedAt: time.Now().UTC(),
		Earnings:   earnings,
	}, nil
}

// statusFor maps engine and storage errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, faucet.ErrSimulationDiverged), errors.Is(err, garden.ErrSimulationDiverged):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
