// Package faucet simulates the daily-compounding faucet scheme: one state
// transition per calendar day, walking forward from the wallet's start date
// until a year produces zero earnings.
package faucet

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/trend"
)

// ErrSimulationDiverged is returned when a wallet's earnings never reach
// zero within the iteration ceiling.
var ErrSimulationDiverged = errors.New("simulation diverged: earnings never reached zero")

// maxSimulationYears is the hard ceiling on the walk-until-termination loop.
const maxSimulationYears = 100

// Engine walks faucet wallets day by day.
type Engine struct {
	settings domain.FaucetSettings
	config   domain.PlanConfig
	rng      *rand.Rand
}

// NewEngine creates a faucet engine. The caller owns the random source;
// a fixed seed makes the walk reproducible.
func NewEngine(settings domain.FaucetSettings, config domain.PlanConfig, rng *rand.Rand) *Engine {
	return &Engine{
		settings: settings,
		config:   config,
		rng:      rng,
	}
}

// walkState is the forward-carry accumulator threaded through every day.
// Each period is seeded from the previous period's final state; there is no
// shared mutable result object.
type walkState struct {
	balance       float64 // drip deposit balance
	accumRewards  float64 // accrued, not yet hydrated or claimed
	accumClaimed  float64
	accumConsumed float64 // claimed + hydrated gross rewards
	dayIndex      int     // days since wallet start, for hydrate cadence
	nextAction    domain.NextAction
}

// WalkWallet simulates one wallet from its start date until the terminal
// year, returning the complete per-year result tree.
func (e *Engine) WalkWallet(w *domain.Wallet) (*domain.WalletEarnings, error) {
	custom := customValueDates(w)

	state := walkState{nextAction: domain.KeepCompounding}
	earnings := &domain.WalletEarnings{
		WalletID:     w.WalletID,
		YearEarnings: make(map[int]*domain.YearEarnings),
	}

	start := w.StartDate
	for yearOffset := 0; ; yearOffset++ {
		if yearOffset >= maxSimulationYears {
			return nil, fmt.Errorf("%w (wallet %s)", ErrSimulationDiverged, w.WalletID)
		}

		year := start.Year() + yearOffset
		yearEarnings, err := e.walkYear(w, year, start, custom, &state)
		if err != nil {
			return nil, err
		}
		earnings.YearEarnings[year] = yearEarnings

		if yearEarnings.LastYear {
			return earnings, nil
		}
	}
}

// walkYear simulates one calendar year. The first simulated year starts at
// the wallet's start month and day.
func (e *Engine) walkYear(w *domain.Wallet, year int, start time.Time, custom []time.Time, state *walkState) (*domain.YearEarnings, error) {
	yearEarnings := &domain.YearEarnings{
		Year:   year,
		Months: make(map[time.Month]*domain.MonthEarningsAndInfo),
	}

	firstMonth := time.January
	if year == start.Year() {
		firstMonth = start.Month()
	}

	var lastMonth *domain.MonthEarningsAndInfo
	for month := firstMonth; month <= time.December; month++ {
		monthEarnings, err := e.walkMonth(w, year, month, start, custom, state)
		if err != nil {
			return nil, err
		}
		yearEarnings.Months[month] = monthEarnings
		lastMonth = monthEarnings

		yearEarnings.TotalYearEarnings += monthEarnings.MonthEarnings
		yearEarnings.TotalYearClaimedAfterTax += monthEarnings.MonthClaimedAfterTax
		yearEarnings.TotalYearClaimedInCurrency += monthEarnings.MonthClaimedInCurrency
		yearEarnings.TotalYearReinvestedAfterTax += monthEarnings.MonthReinvestedAfterTax
		yearEarnings.DepositsInCurrency += monthEarnings.DepositsInCurrency
	}

	yearEarnings.AccumClaimed = state.accumClaimed
	yearEarnings.AccumConsumedRewards = state.accumConsumed

	// The year is terminal once its last month accrues nothing. Walk back
	// through the months to find the true last paying month.
	if lastMonth != nil && lastMonth.MonthEarnings == 0 {
		yearEarnings.LastYear = true
		yearEarnings.LastPayoutMonth = lastPayoutMonth(yearEarnings)
	}

	return yearEarnings, nil
}

// walkMonth simulates one calendar month's days.
func (e *Engine) walkMonth(w *domain.Wallet, year int, month time.Month, start time.Time, custom []time.Time, state *walkState) (*domain.MonthEarningsAndInfo, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	key := domain.NewMonthKey(monthStart)

	var input *domain.MonthInput
	if mi, ok := w.MonthInputs[key]; ok {
		input = &mi
	}

	monthValue, err := e.monthTokenValue(input, start, monthStart, custom)
	if err != nil {
		return nil, err
	}

	reinvest := domain.ResolveReinvest(input, e.settings.DefaultReinvest)
	frequency := domain.ResolveHydrateFrequency(input, e.settings.DefaultHydrateFrequency)

	info := &domain.MonthEarningsAndInfo{
		Month:              monthStart,
		TokenValueForMonth: monthValue,
	}

	firstDay := 1
	if year == start.Year() && month == start.Month() {
		firstDay = start.Day()
	}
	daysIn := daysInMonth(year, month)

	for day := firstDay; day <= daysIn; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayEarnings := e.walkDay(date, daysIn, input, monthValue, reinvest, frequency, state)
		info.Days = append(info.Days, dayEarnings)

		info.MonthEarnings += dayEarnings.RewardsAccrued
		info.MonthClaimedAfterTax += dayEarnings.ClaimAfterTax
		info.MonthClaimedInCurrency += dayEarnings.ClaimInCurrency
		info.MonthReinvestedAfterTax += dayEarnings.ReinvestAfterTax
		info.DepositsInCurrency += dayEarnings.DepositsInCurrency
		info.EstimatedGasFees += dayEarnings.EstimatedGasFees
		if !dayEarnings.GasFeesCoveredByClaim {
			info.UncoveredGasFees += dayEarnings.EstimatedGasFees
		}

		state.dayIndex++
	}

	info.DripDepositBalanceEndOfMonth = state.balance
	info.AccumClaimed = state.accumClaimed
	info.AccumConsumedRewards = state.accumConsumed

	state.nextAction = state.nextAction.Escalate(e.lifecycleFor(state))
	info.NextActions = state.nextAction

	return info, nil
}

// walkDay performs one day's transition: accrue, then claim or hydrate,
// then apply deposits.
func (e *Engine) walkDay(date time.Time, daysIn int, input *domain.MonthInput, monthValue, reinvest float64, frequency domain.Frequency, state *walkState) domain.DayEarnings {
	s := e.settings

	dayValue := trend.ApplyVariance(monthValue, e.rng)

	reward := 0.0
	if state.accumConsumed < s.MaxPayoutCap {
		reward = state.balance * s.DailyCompound
	}
	state.accumRewards += reward

	day := domain.DayEarnings{
		Date:           date,
		RewardsAccrued: reward,
		TokenValue:     dayValue,
	}

	if ShouldClaimOnDay(date, s.ClaimDays, reinvest) {
		if state.accumRewards > 0 {
			gross := state.accumRewards
			day.ClaimBeforeWhaleTax = gross * (1 - s.ClaimTax)
			day.WhaleTaxRate = WhaleTaxRate(state.balance / s.TotalSupply)
			day.ClaimAfterTax = day.ClaimBeforeWhaleTax * (1 - day.WhaleTaxRate)
			day.ClaimInCurrency = day.ClaimAfterTax * dayValue

			state.accumClaimed += day.ClaimAfterTax
			state.accumConsumed += gross
			state.accumRewards = 0
		}
	} else if hydrateDue(state.dayIndex, frequency) && state.accumRewards > 0 {
		gross := state.accumRewards
		day.ReinvestAfterTax = gross * (1 - s.HydrateTax)

		state.balance += day.ReinvestAfterTax
		state.accumConsumed += gross
		state.accumRewards = 0
	}

	// Deposits convert after the day's reward and tax processing: they do
	// not participate in same-day accrual.
	deposited := false
	for _, dep := range domain.DepositsForDay(input, date.Day()) {
		tokens := dep.AmountInTokens
		if dep.AmountInCurrency > 0 {
			net := dep.AmountInCurrency*(1-s.ExchangeFeePct) - s.FeeBuffer
			if net > 0 {
				tokens += net / dayValue
			}
			day.DepositsInCurrency += dep.AmountInCurrency
		}
		afterTax := tokens * (1 - s.DepositTax)
		day.DepositsInTokens += afterTax
		state.balance += afterTax
		deposited = true
	}

	day.EstimatedGasFees = s.AverageGasFee
	if deposited {
		day.EstimatedGasFees *= 2
	}
	day.GasFeesCoveredByClaim = day.ClaimInCurrency > 2*day.EstimatedGasFees

	day.AccumRewards = state.accumRewards
	day.DripDepositBalance = state.balance
	day.AccumClaimed = state.accumClaimed
	day.AccumConsumedRewards = state.accumConsumed

	return day
}

// lifecycleFor derives the lifecycle flag from the current state. Escalation
// to a previous, higher flag is handled by the caller.
func (e *Engine) lifecycleFor(state *walkState) domain.NextAction {
	s := e.settings
	switch {
	case s.MaxPayoutCap > 0 && state.accumConsumed >= 0.9*s.MaxPayoutCap:
		return domain.NewWalletRequired
	case state.accumConsumed >= s.MaxPayoutCap,
		s.MaxDepositBalance > 0 && state.balance >= s.MaxDepositBalance/2:
		return domain.ConsiderNewWallet
	default:
		return domain.KeepCompounding
	}
}

// lastPayoutMonth walks backward through a terminal year for the final month
// that still accrued rewards.
func lastPayoutMonth(year *domain.YearEarnings) domain.MonthKey {
	months := make([]time.Month, 0, len(year.Months))
	for m := range year.Months {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })

	for _, m := range months {
		if year.Months[m].MonthEarnings > 0 {
			return domain.NewMonthKey(year.Months[m].Month)
		}
	}
	return ""
}

// monthTokenValue resolves a month's token value: custom override first,
// trend model otherwise. Months covered by custom values shift the trend's
// effective start.
func (e *Engine) monthTokenValue(input *domain.MonthInput, start, monthStart time.Time, custom []time.Time) (float64, error) {
	if v := domain.ResolveTokenValue(input); v != nil {
		return *v, nil
	}

	lastCustom := latestCustomBefore(custom, monthStart)
	return trend.ValueForMonth(
		start, monthStart,
		e.settings.CurrentTokenValue, e.settings.TrendTargetValue,
		e.settings.Trend, e.settings.TrendPeriod,
		lastCustom,
	)
}

// customValueDates collects the sorted months where the wallet has a custom
// token value.
func customValueDates(w *domain.Wallet) []time.Time {
	var dates []time.Time
	for key, mi := range w.MonthInputs {
		if mi.TokenValue == nil {
			continue
		}
		t, err := key.Time()
		if err != nil {
			continue // malformed keys are rejected by validation upstream
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// latestCustomBefore returns the latest custom-value month strictly before
// monthStart, or nil.
func latestCustomBefore(custom []time.Time, monthStart time.Time) *time.Time {
	var latest *time.Time
	for i := range custom {
		if custom[i].Before(monthStart) {
			latest = &custom[i]
		}
	}
	return latest
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
