package domain

import "time"

// DayEventKind discriminates the entries of a garden day's schedule.
type DayEventKind string

// DayEventKind constants.
const (
	EventSow     DayEventKind = "sow"
	EventHarvest DayEventKind = "harvest"
	EventDeposit DayEventKind = "deposit"
)

// DayEvent is one realized schedule entry. The kind is an explicit
// discriminant so the scheduler's merge/sort step stays exhaustive.
type DayEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	Kind      DayEventKind `json:"kind"`

	// Sow fields.
	PlantsGrown int64   `json:"plantsGrown,omitempty"`
	SeedsLost   float64 `json:"seedsLost,omitempty"`

	// Harvest fields.
	SeedsHarvested    float64 `json:"seedsHarvested,omitempty"`
	HarvestInCurrency float64 `json:"harvestInCurrency,omitempty"`

	// Deposit fields.
	PlantsBought      int64   `json:"plantsBought,omitempty"`
	DepositInCurrency float64 `json:"depositInCurrency,omitempty"`
	DepositInLPTokens float64 `json:"depositInLpTokens,omitempty"`
}

// GardenDayEarnings is one garden day's simulation snapshot.
type GardenDayEarnings struct {
	Date time.Time `json:"date"`

	// PlantBalance is the whole-plant balance at end of day. Always a
	// non-negative integer by construction.
	PlantBalance int64 `json:"plantBalance"`

	// SeedsPerDay is the production rate at end of day.
	SeedsPerDay float64 `json:"seedsPerDay"`

	// AccumSeeds is the accumulated, not yet sown or harvested seed pool
	// at end of day.
	AccumSeeds float64 `json:"accumSeeds"`

	// Day sums.
	PlantsGrown        int64   `json:"plantsGrown"`
	PlantsBought       int64   `json:"plantsBought"`
	SeedsLost          float64 `json:"seedsLost"`
	SeedsHarvested     float64 `json:"seedsHarvested"`
	HarvestInCurrency  float64 `json:"harvestInCurrency"`
	DepositsInCurrency float64 `json:"depositsInCurrency"`
	EstimatedGasFees   float64 `json:"estimatedGasFees"`

	// TokenValue and PlantFraction are the day's varied LP value and the
	// declining plant fraction in effect.
	TokenValue    float64 `json:"tokenValue"`
	PlantFraction float64 `json:"plantFraction"`

	// Schedule is the day's realized event sequence, ordered by timestamp.
	Schedule []DayEvent `json:"schedule"`

	// AccumClaimedInCurrency is the lifetime harvested value at end of day.
	AccumClaimedInCurrency float64 `json:"accumClaimedInCurrency"`
}

// GardenMonthEarningsAndInfo sums one month's garden days. Plant balance and
// seed rate are end-of-period snapshots, not sums.
type GardenMonthEarningsAndInfo struct {
	Month time.Time           `json:"month"`
	Days  []GardenDayEarnings `json:"days"`

	PlantsGrownForMonth  int64   `json:"plantsGrownForMonth"`
	PlantsBoughtForMonth int64   `json:"plantsBoughtForMonth"`
	SeedsLostForMonth    float64 `json:"seedsLostForMonth"`
	HarvestedInCurrency  float64 `json:"harvestedInCurrency"`
	DepositsInCurrency   float64 `json:"depositsInCurrency"`
	EstimatedGasFees     float64 `json:"estimatedGasFees"`

	// Values used for the month.
	TokenValueForMonth    float64 `json:"tokenValueForMonth"`
	PlantFractionForMonth float64 `json:"plantFractionForMonth"`
	YieldPercentage       float64 `json:"yieldPercentage"`

	// End-of-month snapshots.
	PlantBalanceEndOfMonth int64   `json:"plantBalanceEndOfMonth"`
	SeedsPerDayEndOfMonth  float64 `json:"seedsPerDayEndOfMonth"`
	AccumClaimedInCurrency float64 `json:"accumClaimedInCurrency"`
}

// GardenYearEarnings sums one year's garden months.
type GardenYearEarnings struct {
	Year   int                                        `json:"year"`
	Months map[time.Month]*GardenMonthEarningsAndInfo `json:"months"`

	PlantsGrownForYear  int64   `json:"plantsGrownForYear"`
	SeedsLostForYear    float64 `json:"seedsLostForYear"`
	HarvestedInCurrency float64 `json:"harvestedInCurrency"`
	DepositsInCurrency  float64 `json:"depositsInCurrency"`

	// End-of-year snapshots and carry.
	PlantBalanceEndOfYear  int64   `json:"plantBalanceEndOfYear"`
	SeedsPerDayEndOfYear   float64 `json:"seedsPerDayEndOfYear"`
	AccumClaimedInCurrency float64 `json:"accumClaimedInCurrency"`

	// LastYear marks the plan's configured final simulated year.
	LastYear bool `json:"lastYear"`
}

// WalletGardenEarnings is the complete garden output for one wallet.
type WalletGardenEarnings struct {
	WalletID     string                      `json:"walletId"`
	YearEarnings map[int]*GardenYearEarnings `json:"yearEarnings"`
}
