// Package engine is the simulation facade: it validates a complete plan
// snapshot, walks every wallet through both daily engines, aggregates the
// plan overview, and returns one self-contained result tree. A run is
// atomic: it either returns the full tree or an error, never partial
// per-wallet results.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/faucet"
	"github.com/fr3shw3b/dripcalc-sub000/internal/garden"
	"github.com/fr3shw3b/dripcalc-sub000/internal/overview"
)

// Engine computes plan earnings. It holds no state between runs; every run
// recomputes from scratch off the supplied snapshot.
type Engine struct{}

// New creates an engine.
func New() *Engine {
	return &Engine{}
}

// Run simulates the plan with the given seed. Identical plan and seed
// produce identical output.
func (e *Engine) Run(ctx context.Context, plan *domain.Plan, seed int64) (*domain.PlanEarnings, error) {
	if err := Validate(plan); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	faucetEngine := faucet.NewEngine(plan.Faucet, plan.Config, rng)
	gardenEngine := garden.NewEngine(plan.Garden, plan.Config, rng)

	result := &domain.PlanEarnings{
		PlanID:         plan.PlanID,
		ComputedAt:     time.Now().UTC(),
		Seed:           seed,
		WalletEarnings: make(map[string]*domain.WalletEarnings, len(plan.Wallets)),
		Garden: domain.GardenPlanEarnings{
			WalletEarnings: make(map[string]*domain.WalletGardenEarnings, len(plan.Wallets)),
		},
	}

	// Wallets walk in slice order so one seed always replays one stream of
	// variance draws.
	for _, w := range plan.Wallets {
		walletEarnings, err := faucetEngine.WalkWallet(w)
		if err != nil {
			return nil, err
		}
		result.WalletEarnings[w.WalletID] = walletEarnings

		gardenEarnings, err := gardenEngine.WalkWallet(w)
		if err != nil {
			return nil, err
		}
		result.Garden.WalletEarnings[w.WalletID] = gardenEarnings
	}

	result.Info = overview.ComputeFaucet(result.WalletEarnings)
	result.Garden.Info = overview.ComputeGarden(result.Garden.WalletEarnings)

	return result, nil
}
