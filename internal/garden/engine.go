// Package garden simulates the seed/plant liquidity-farming scheme. Rewards
// are realized only in whole plant units, seeds accrue continuously at
// per-second precision, and each day resolves a schedule of sow, harvest,
// and deposit events in timestamp order.
package garden

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/trend"
)

// ErrSimulationDiverged is returned when the configured final year puts the
// walk past the iteration ceiling.
var ErrSimulationDiverged = errors.New("simulation diverged: year span exceeds ceiling")

// maxSimulationYears is the hard ceiling on the year walk.
const maxSimulationYears = 100

// secondsPerDay is the seed-accrual time base.
const secondsPerDay = 86400

// Engine walks garden wallets day by day.
type Engine struct {
	settings domain.GardenSettings
	config   domain.PlanConfig
	rng      *rand.Rand
}

// NewEngine creates a garden engine. The caller owns the random source.
func NewEngine(settings domain.GardenSettings, config domain.PlanConfig, rng *rand.Rand) *Engine {
	return &Engine{
		settings: settings,
		config:   config,
		rng:      rng,
	}
}

// walkState is the forward-carry accumulator threaded through every day.
type walkState struct {
	plants       int64
	accumSeeds   float64
	accumClaimed float64 // harvested value in currency, lifetime
}

// WalkWallet simulates one wallet from its start date through the plan's
// final year, returning the complete per-year result tree.
func (e *Engine) WalkWallet(w *domain.Wallet) (*domain.WalletGardenEarnings, error) {
	startYear := w.StartDate.Year()
	if e.config.FinalYear < startYear {
		return nil, fmt.Errorf("final year %d before wallet start %d", e.config.FinalYear, startYear)
	}
	if e.config.FinalYear-startYear >= maxSimulationYears {
		return nil, fmt.Errorf("%w (wallet %s)", ErrSimulationDiverged, w.WalletID)
	}

	state := walkState{}
	earnings := &domain.WalletGardenEarnings{
		WalletID:     w.WalletID,
		YearEarnings: make(map[int]*domain.GardenYearEarnings),
	}

	for year := startYear; year <= e.config.FinalYear; year++ {
		yearEarnings, err := e.walkYear(w, year, &state)
		if err != nil {
			return nil, err
		}
		yearEarnings.LastYear = year == e.config.FinalYear
		earnings.YearEarnings[year] = yearEarnings
	}

	return earnings, nil
}

// walkYear simulates one calendar year.
func (e *Engine) walkYear(w *domain.Wallet, year int, state *walkState) (*domain.GardenYearEarnings, error) {
	yearEarnings := &domain.GardenYearEarnings{
		Year:   year,
		Months: make(map[time.Month]*domain.GardenMonthEarningsAndInfo),
	}

	firstMonth := time.January
	if year == w.StartDate.Year() {
		firstMonth = w.StartDate.Month()
	}

	// The year-end rate snapshot uses the last walked month's yield.
	lastYield := e.settings.DefaultYieldPercentage
	for month := firstMonth; month <= time.December; month++ {
		monthEarnings, err := e.walkMonth(w, year, month, state)
		if err != nil {
			return nil, err
		}
		yearEarnings.Months[month] = monthEarnings
		lastYield = monthEarnings.YieldPercentage

		yearEarnings.PlantsGrownForYear += monthEarnings.PlantsGrownForMonth
		yearEarnings.SeedsLostForYear += monthEarnings.SeedsLostForMonth
		yearEarnings.HarvestedInCurrency += monthEarnings.HarvestedInCurrency
		yearEarnings.DepositsInCurrency += monthEarnings.DepositsInCurrency
	}

	yearEarnings.PlantBalanceEndOfYear = state.plants
	yearEarnings.SeedsPerDayEndOfYear = e.seedsPerDay(state.plants, lastYield)
	yearEarnings.AccumClaimedInCurrency = state.accumClaimed

	return yearEarnings, nil
}

// walkMonth simulates one calendar month's days.
func (e *Engine) walkMonth(w *domain.Wallet, year int, month time.Month, state *walkState) (*domain.GardenMonthEarningsAndInfo, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	key := domain.NewMonthKey(monthStart)

	var input *domain.MonthInput
	if mi, ok := w.MonthInputs[key]; ok {
		input = &mi
	}

	monthValue, err := e.monthTokenValue(w, input, monthStart)
	if err != nil {
		return nil, err
	}

	yield := e.yieldForMonth(input)
	reinvest := domain.ResolveReinvest(input, e.settings.DefaultReinvest)
	frequency := domain.ResolveSowFrequency(input, e.settings.DefaultSowFrequency)
	plantFraction := e.plantFractionForMonth(w, input, monthStart)

	info := &domain.GardenMonthEarningsAndInfo{
		Month:                 monthStart,
		TokenValueForMonth:    monthValue,
		PlantFractionForMonth: plantFraction,
		YieldPercentage:       yield,
	}

	firstDay := 1
	if year == w.StartDate.Year() && month == w.StartDate.Month() {
		firstDay = w.StartDate.Day()
	}
	daysIn := daysInMonth(year, month)

	for day := firstDay; day <= daysIn; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayEarnings := e.walkDay(date, input, monthValue, yield, reinvest, frequency, plantFraction, state)
		info.Days = append(info.Days, dayEarnings)

		info.PlantsGrownForMonth += dayEarnings.PlantsGrown
		info.PlantsBoughtForMonth += dayEarnings.PlantsBought
		info.SeedsLostForMonth += dayEarnings.SeedsLost
		info.HarvestedInCurrency += dayEarnings.HarvestInCurrency
		info.DepositsInCurrency += dayEarnings.DepositsInCurrency
		info.EstimatedGasFees += dayEarnings.EstimatedGasFees
	}

	info.PlantBalanceEndOfMonth = state.plants
	info.SeedsPerDayEndOfMonth = e.seedsPerDay(state.plants, yield)
	info.AccumClaimedInCurrency = state.accumClaimed

	return info, nil
}

// seedsPerDay is the production rate for a plant balance at a daily yield.
func (e *Engine) seedsPerDay(plants int64, yield float64) float64 {
	return float64(plants) * e.settings.SeedsPerPlant * yield
}

// yieldForMonth resolves the month's daily yield.
func (e *Engine) yieldForMonth(input *domain.MonthInput) float64 {
	return domain.ResolveGardenYield(input, e.settings.DefaultYieldPercentage)
}

// monthTokenValue resolves a month's LP token value: custom override first,
// trend model otherwise.
func (e *Engine) monthTokenValue(w *domain.Wallet, input *domain.MonthInput, monthStart time.Time) (float64, error) {
	if v := domain.ResolveGardenTokenValue(input); v != nil {
		return *v, nil
	}

	lastCustom := latestCustomValueBefore(w, monthStart)
	return trend.ValueForMonth(
		w.StartDate, monthStart,
		e.settings.CurrentTokenValue, e.settings.TrendTargetValue,
		e.settings.Trend, e.settings.TrendPeriod,
		lastCustom,
	)
}

// plantFractionForMonth resolves the month's plant fraction: custom override
// first, declining time-scale model otherwise.
func (e *Engine) plantFractionForMonth(w *domain.Wallet, input *domain.MonthInput, monthStart time.Time) float64 {
	if v := domain.ResolvePlantFraction(input); v != nil {
		return *v
	}
	finalYearEnd := time.Date(e.config.FinalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	return DecliningPlantLPRatioValue(monthStart, w.StartDate, finalYearEnd, e.settings.MinPlantFraction, e.settings.MaxPlantFraction)
}

// latestCustomValueBefore returns the latest month strictly before
// monthStart with a custom garden token value, or nil.
func latestCustomValueBefore(w *domain.Wallet, monthStart time.Time) *time.Time {
	var latest *time.Time
	for key, mi := range w.MonthInputs {
		if mi.GardenValues == nil || mi.GardenValues.TokenValue == nil {
			continue
		}
		t, err := key.Time()
		if err != nil {
			continue
		}
		if t.Before(monthStart) && (latest == nil || t.After(*latest)) {
			tt := t
			latest = &tt
		}
	}
	return latest
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
