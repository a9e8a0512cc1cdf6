// Package domain holds the pure types shared across the projection engine:
// plans, wallets, per-month inputs, and the result trees both daily engines
// produce. Result entities are created fresh on every simulation run; the
// engine never mutates its inputs.
package domain

import "time"

// Plan groups wallets with the settings and config they are projected under.
type Plan struct {
	PlanID    string         `json:"planId"`
	Label     string         `json:"label"`
	Config    PlanConfig     `json:"config"`
	Faucet    FaucetSettings `json:"faucetSettings"`
	Garden    GardenSettings `json:"gardenSettings"`
	Wallets   []*Wallet      `json:"wallets"`
	CreatedAt time.Time      `json:"createdAt"`
}

// PlanConfig holds plan-wide bounds shared by both schemes.
type PlanConfig struct {
	// MinWalletDate and MaxWalletDate bound wallet start dates and deposit
	// timestamps. Dates outside the range fail validation before any walk.
	MinWalletDate time.Time `json:"minWalletDate"`
	MaxWalletDate time.Time `json:"maxWalletDate"`

	// FinalYear is the last calendar year the garden engine simulates.
	FinalYear int `json:"finalYear"`
}

// Wallet describes one simulated wallet. Mutated only through host-side
// update operations, never by the engine.
type Wallet struct {
	WalletID    string                  `json:"id"`
	Label       string                  `json:"label"`
	StartDate   time.Time               `json:"startDate"`
	MonthInputs map[MonthKey]MonthInput `json:"monthInputs"`
}

// MonthInput carries the user's per-month overrides and deposits. All fields
// are optional; nil means "fall back to the plan-level default".
type MonthInput struct {
	// TokenValue overrides the trend-computed token value for this month.
	TokenValue *float64 `json:"tokenValue,omitempty"`

	// Reinvest is the fraction of the month's rewards that is compounded
	// rather than claimed (0..1).
	Reinvest *float64 `json:"reinvest,omitempty"`

	// HydrateFrequency / SowFrequency override how often compounding
	// happens inside the reinvest window.
	HydrateFrequency *Frequency `json:"hydrateFrequency,omitempty"`
	SowFrequency     *Frequency `json:"sowFrequency,omitempty"`

	// Deposits lists the month's deposits.
	Deposits []Deposit `json:"deposits,omitempty"`

	// DayActions are garden-only per-day overrides that take precedence
	// over the harvest window and the schedule optimizer.
	DayActions []DayActionOverride `json:"customDayActions,omitempty"`

	// GardenValues are garden-only per-month value overrides.
	GardenValues *GardenMonthValues `json:"customGardenValues,omitempty"`
}

// Deposit is one deposit instance. DepositID is shared across the monthly
// instances of a recurring deposit. Immutable once produced for a run.
type Deposit struct {
	DepositID        string    `json:"depositId"`
	DayOfMonth       int       `json:"dayOfMonth"`
	Timestamp        time.Time `json:"timestamp"`
	AmountInCurrency float64   `json:"amountInCurrency,omitempty"`
	AmountInTokens   float64   `json:"amountInTokens,omitempty"`
}

// DayActionKind is the user-forced action for a garden day.
type DayActionKind string

// DayActionKind constants.
const (
	DayActionSow     DayActionKind = "sow"
	DayActionHarvest DayActionKind = "harvest"
	DayActionNone    DayActionKind = "none"
)

// DayActionOverride forces a garden day's action for an exact date.
type DayActionOverride struct {
	Date   time.Time     `json:"date"`
	Action DayActionKind `json:"action"`
}

// GardenMonthValues overrides garden trend values for one month.
type GardenMonthValues struct {
	TokenValue      *float64 `json:"tokenValue,omitempty"`
	PlantFraction   *float64 `json:"plantFraction,omitempty"`
	YieldPercentage *float64 `json:"yieldPercentage,omitempty"`
}

// Frequency is how often a compounding action happens inside the reinvest
// window.
type Frequency string

// Frequency constants.
const (
	MultipleTimesADay Frequency = "multipleTimesADay"
	EveryDay          Frequency = "everyDay"
	EveryOtherDay     Frequency = "everyOtherDay"
	EveryWeek         Frequency = "everyWeek"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case MultipleTimesADay, EveryDay, EveryOtherDay, EveryWeek:
		return true
	}
	return false
}

// ClaimDaysPolicy selects which end of the month the claim (or harvest)
// block of days sits at.
type ClaimDaysPolicy string

// ClaimDaysPolicy constants.
const (
	ClaimStartOfMonth ClaimDaysPolicy = "startOfMonth"
	ClaimEndOfMonth   ClaimDaysPolicy = "endOfMonth"
)

// Valid reports whether p is a known claim-days policy.
func (p ClaimDaysPolicy) Valid() bool {
	return p == ClaimStartOfMonth || p == ClaimEndOfMonth
}
