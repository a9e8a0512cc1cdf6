package domain

import "time"

// OverviewInfo is the plan-wide faucet rollup across all wallets.
type OverviewInfo struct {
	TotalClaimed           float64 `json:"totalClaimed"`
	TotalClaimedInCurrency float64 `json:"totalClaimedInCurrency"`
	TotalConsumedRewards   float64 `json:"totalConsumedRewards"`

	// PercentageMaxPayoutConsumed is totalClaimed over totalConsumedRewards.
	PercentageMaxPayoutConsumed float64 `json:"percentageMaxPayoutConsumed"`

	// NetPositiveUpToDate is the latest month up to which every wallet is
	// net positive. Empty when no month qualifies.
	NetPositiveUpToDate MonthKey `json:"netPositiveUpToDate,omitempty"`

	// DepositsOutOfPocket sums deposit fiat amounts plus gas fees not
	// covered by claimed rewards.
	DepositsOutOfPocket float64 `json:"depositsOutOfPocket"`

	// DepositsOutOfPocketCoveredBy is the earliest month where cumulative
	// claimed-in-currency meets or exceeds DepositsOutOfPocket. Empty when
	// claims never cover the out-of-pocket cost.
	DepositsOutOfPocketCoveredBy MonthKey `json:"depositsOutOfPocketCoveredBy,omitempty"`
}

// GardenOverviewInfo is the plan-wide garden rollup across all wallets.
type GardenOverviewInfo struct {
	TotalPlantBalance        int64   `json:"totalPlantBalance"`
	TotalHarvestedInCurrency float64 `json:"totalHarvestedInCurrency"`
	TotalSeedsLost           float64 `json:"totalSeedsLost"`

	DepositsOutOfPocket          float64  `json:"depositsOutOfPocket"`
	DepositsOutOfPocketCoveredBy MonthKey `json:"depositsOutOfPocketCoveredBy,omitempty"`
}

// PlanEarnings is the complete, self-contained result tree for one plan.
// Safe to persist as-is; the engine never reads it back.
type PlanEarnings struct {
	PlanID     string    `json:"planId"`
	ComputedAt time.Time `json:"computedAt"`
	Seed       int64     `json:"seed"`

	WalletEarnings map[string]*WalletEarnings `json:"walletEarnings"`
	Info           OverviewInfo               `json:"info"`

	Garden GardenPlanEarnings `json:"gardenEarnings"`
}

// GardenPlanEarnings groups the garden side of the result tree.
type GardenPlanEarnings struct {
	WalletEarnings map[string]*WalletGardenEarnings `json:"walletEarnings"`
	Info           GardenOverviewInfo               `json:"info"`
}
