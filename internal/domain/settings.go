package domain

import "github.com/fr3shw3b/dripcalc-sub000/internal/trend"

// FaucetSettings holds the faucet scheme's plan-level parameters. Month
// inputs may override the reinvest fraction, hydrate frequency, and token
// value per month; everything else applies to the whole plan.
type FaucetSettings struct {
	// DailyCompound is the daily reward rate applied to the deposit balance.
	DailyCompound float64 `json:"dailyCompound"`

	// Taxes, as fractions of the gross amount.
	HydrateTax float64 `json:"hydrateTax"`
	ClaimTax   float64 `json:"claimTax"`
	DepositTax float64 `json:"depositTax"`

	// MaxPayoutCap is the lifetime ceiling on consumed (claimed + hydrated)
	// rewards per wallet, in tokens.
	MaxPayoutCap float64 `json:"maxPayoutCap"`

	// MaxDepositBalance is the deposit-balance level at which a new wallet
	// should be considered, in tokens.
	MaxDepositBalance float64 `json:"maxDepositBalance"`

	// TotalSupply scales the whale-tax band lookup.
	TotalSupply float64 `json:"totalSupply"`

	// AverageGasFee is the estimated gas cost per day, in currency. Days
	// with a deposit pay it twice.
	AverageGasFee float64 `json:"averageGasFee"`

	// ExchangeFeePct and FeeBuffer are deducted from fiat deposits before
	// conversion to tokens.
	ExchangeFeePct float64 `json:"exchangeFeePct"`
	FeeBuffer      float64 `json:"feeBuffer"`

	// ClaimDays selects which end of the month claim days sit at.
	ClaimDays ClaimDaysPolicy `json:"claimDays"`

	// DefaultReinvest and DefaultHydrateFrequency apply to months without
	// an explicit override.
	DefaultReinvest         float64   `json:"defaultReinvest"`
	DefaultHydrateFrequency Frequency `json:"defaultHydrateFrequency"`

	// Token value model.
	CurrentTokenValue float64           `json:"currentTokenValue"`
	TrendTargetValue  float64           `json:"trendTargetValue"`
	Trend             trend.Trend       `json:"trend"`
	TrendPeriod       trend.TrendPeriod `json:"trendPeriod"`
}

// DefaultFaucetSettings returns the faucet defaults the host seeds new plans
// with.
func DefaultFaucetSettings() FaucetSettings {
	return FaucetSettings{
		DailyCompound:           0.01,
		HydrateTax:              0.05,
		ClaimTax:                0.10,
		DepositTax:              0.10,
		MaxPayoutCap:            100000,
		MaxDepositBalance:       27500,
		TotalSupply:             1000000,
		AverageGasFee:           1,
		ExchangeFeePct:          0.0025,
		FeeBuffer:               1,
		ClaimDays:               ClaimStartOfMonth,
		DefaultReinvest:         1,
		DefaultHydrateFrequency: EveryDay,
		CurrentTokenValue:       50,
		TrendTargetValue:        25,
		Trend:                   trend.Stable,
		TrendPeriod:             trend.FiveYears,
	}
}

// GardenSettings holds the garden scheme's plan-level parameters.
type GardenSettings struct {
	// SeedsPerPlant is the whole-plant unit: seeds convert to plants only
	// in integer multiples of this.
	SeedsPerPlant float64 `json:"seedsPerPlant"`

	// DefaultYieldPercentage is the daily seed yield per plant, as a
	// fraction of a plant's seeds.
	DefaultYieldPercentage float64 `json:"averageGardenYieldPercentage"`

	// AverageGasFee is the estimated gas cost per sow/harvest/deposit, in
	// currency.
	AverageGasFee float64 `json:"averageGasFee"`

	// ExchangeFeePct and FeeBuffer are deducted from fiat deposits before
	// conversion to LP tokens.
	ExchangeFeePct float64 `json:"exchangeFeePct"`
	FeeBuffer      float64 `json:"feeBuffer"`

	// HarvestDays selects which end of the month harvest days sit at.
	HarvestDays ClaimDaysPolicy `json:"gardenHarvestDays"`

	// DefaultReinvest and DefaultSowFrequency apply to months without an
	// explicit override.
	DefaultReinvest     float64   `json:"gardenReinvest"`
	DefaultSowFrequency Frequency `json:"defaultSowFrequency"`

	// Plant-to-LP-value fraction bounds; the fraction declines linearly
	// from max to min between wallet start and the plan's final year.
	MaxPlantFraction float64 `json:"maxPlantFraction"`
	MinPlantFraction float64 `json:"minPlantFraction"`

	// LP token value model.
	CurrentTokenValue float64           `json:"currentTokenValue"`
	TrendTargetValue  float64           `json:"trendTargetValue"`
	Trend             trend.Trend       `json:"trend"`
	TrendPeriod       trend.TrendPeriod `json:"trendPeriod"`
}

// DefaultGardenSettings returns the garden defaults the host seeds new plans
// with.
func DefaultGardenSettings() GardenSettings {
	return GardenSettings{
		SeedsPerPlant:          2592000,
		DefaultYieldPercentage: 0.03,
		AverageGasFee:          0.3,
		ExchangeFeePct:         0.0025,
		FeeBuffer:              1,
		HarvestDays:            ClaimEndOfMonth,
		DefaultReinvest:        1,
		DefaultSowFrequency:    EveryDay,
		MaxPlantFraction:       1,
		MinPlantFraction:       0.1,
		CurrentTokenValue:      30,
		TrendTargetValue:       20,
		Trend:                  trend.Stable,
		TrendPeriod:            trend.FiveYears,
	}
}
