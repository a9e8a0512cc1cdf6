package engine

import (
	"errors"
	"fmt"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

// ErrValidation is returned for malformed input, detected at the boundary
// before any simulation walk begins.
var ErrValidation = errors.New("invalid plan input")

// Validate checks the whole plan up front. A failure means no wallet is
// simulated at all.
func Validate(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: nil plan", ErrValidation)
	}
	if !plan.Faucet.Trend.Valid() {
		return fmt.Errorf("%w: faucet trend %q", ErrValidation, plan.Faucet.Trend)
	}
	if !plan.Faucet.TrendPeriod.Valid() {
		return fmt.Errorf("%w: faucet trend period %q", ErrValidation, plan.Faucet.TrendPeriod)
	}
	if !plan.Garden.Trend.Valid() {
		return fmt.Errorf("%w: garden trend %q", ErrValidation, plan.Garden.Trend)
	}
	if !plan.Garden.TrendPeriod.Valid() {
		return fmt.Errorf("%w: garden trend period %q", ErrValidation, plan.Garden.TrendPeriod)
	}
	if !plan.Faucet.ClaimDays.Valid() {
		return fmt.Errorf("%w: claim days policy %q", ErrValidation, plan.Faucet.ClaimDays)
	}
	if !plan.Garden.HarvestDays.Valid() {
		return fmt.Errorf("%w: harvest days policy %q", ErrValidation, plan.Garden.HarvestDays)
	}
	if plan.Config.FinalYear <= 0 {
		return fmt.Errorf("%w: final year %d", ErrValidation, plan.Config.FinalYear)
	}

	for _, w := range plan.Wallets {
		if err := validateWallet(plan, w); err != nil {
			return err
		}
	}
	return nil
}

func validateWallet(plan *domain.Plan, w *domain.Wallet) error {
	if w == nil || w.WalletID == "" {
		return fmt.Errorf("%w: wallet without id", ErrValidation)
	}
	if w.StartDate.IsZero() {
		return fmt.Errorf("%w: wallet %s has no start date", ErrValidation, w.WalletID)
	}

	cfg := plan.Config
	if !cfg.MinWalletDate.IsZero() && w.StartDate.Before(cfg.MinWalletDate) {
		return fmt.Errorf("%w: wallet %s starts before %s", ErrValidation, w.WalletID, cfg.MinWalletDate.Format("2006-01-02"))
	}
	if !cfg.MaxWalletDate.IsZero() && w.StartDate.After(cfg.MaxWalletDate) {
		return fmt.Errorf("%w: wallet %s starts after %s", ErrValidation, w.WalletID, cfg.MaxWalletDate.Format("2006-01-02"))
	}

	for key, input := range w.MonthInputs {
		if !key.Valid() {
			return fmt.Errorf("%w: wallet %s month key %q", ErrValidation, w.WalletID, key)
		}
		if err := validateMonthInput(w.WalletID, key, input); err != nil {
			return err
		}
	}
	return nil
}

func validateMonthInput(walletID string, key domain.MonthKey, input domain.MonthInput) error {
	if input.Reinvest != nil && (*input.Reinvest < 0 || *input.Reinvest > 1) {
		return fmt.Errorf("%w: wallet %s month %s reinvest %v outside [0,1]", ErrValidation, walletID, key, *input.Reinvest)
	}
	if input.TokenValue != nil && *input.TokenValue <= 0 {
		return fmt.Errorf("%w: wallet %s month %s token value %v", ErrValidation, walletID, key, *input.TokenValue)
	}
	if input.HydrateFrequency != nil && !input.HydrateFrequency.Valid() {
		return fmt.Errorf("%w: wallet %s month %s hydrate frequency %q", ErrValidation, walletID, key, *input.HydrateFrequency)
	}
	if input.SowFrequency != nil && !input.SowFrequency.Valid() {
		return fmt.Errorf("%w: wallet %s month %s sow frequency %q", ErrValidation, walletID, key, *input.SowFrequency)
	}

	for _, dep := range input.Deposits {
		if dep.DayOfMonth < 1 || dep.DayOfMonth > 31 {
			return fmt.Errorf("%w: wallet %s month %s deposit day %d", ErrValidation, walletID, key, dep.DayOfMonth)
		}
		if dep.AmountInCurrency < 0 || dep.AmountInTokens < 0 {
			return fmt.Errorf("%w: wallet %s month %s negative deposit amount", ErrValidation, walletID, key)
		}
	}

	for _, o := range input.DayActions {
		switch o.Action {
		case domain.DayActionSow, domain.DayActionHarvest, domain.DayActionNone:
		default:
			return fmt.Errorf("%w: wallet %s month %s day action %q", ErrValidation, walletID, key, o.Action)
		}
	}
	return nil
}
