package domain

import "time"

// NextAction is the faucet wallet lifecycle flag. Transitions are monotonic
// within one wallet's simulation: once elevated, never downgraded.
type NextAction string

// NextAction constants, in escalation order.
const (
	KeepCompounding   NextAction = "keepCompounding"
	ConsiderNewWallet NextAction = "considerNewWallet"
	NewWalletRequired NextAction = "newWalletRequired"
)

// rank orders next actions for monotonic escalation.
func (a NextAction) rank() int {
	switch a {
	case ConsiderNewWallet:
		return 1
	case NewWalletRequired:
		return 2
	default:
		return 0
	}
}

// Escalate returns the higher of the two lifecycle flags.
func (a NextAction) Escalate(b NextAction) NextAction {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// DayEarnings is one faucet day's simulation snapshot. Each day derives
// solely from the previous day's record plus that day's inputs.
type DayEarnings struct {
	Date time.Time `json:"date"`

	// RewardsAccrued is the day's 1% reward, zero once the max payout cap
	// has been consumed.
	RewardsAccrued float64 `json:"rewardsAccrued"`

	// AccumRewards is the accrued-but-unrealized pool at end of day:
	// rewards waiting for the next hydrate day.
	AccumRewards float64 `json:"accumRewards"`

	// Hydrate path.
	ReinvestAfterTax float64 `json:"reinvestAfterTax"`

	// Claim path.
	ClaimBeforeWhaleTax float64 `json:"claimBeforeWhaleTax"`
	ClaimAfterTax       float64 `json:"claimAfterTax"`
	WhaleTaxRate        float64 `json:"whaleTaxRate"`
	ClaimInCurrency     float64 `json:"claimInCurrency"`

	// Deposits applied this day, after fees and deposit tax.
	DepositsInTokens   float64 `json:"depositsInTokens"`
	DepositsInCurrency float64 `json:"depositsInCurrency"`

	// DripDepositBalance is the deposit balance at end of day.
	DripDepositBalance float64 `json:"dripDepositBalance"`

	// TokenValue is the day's varied token value.
	TokenValue float64 `json:"tokenValue"`

	// Gas accounting.
	EstimatedGasFees      float64 `json:"estimatedGasFees"`
	GasFeesCoveredByClaim bool    `json:"gasFeesCoveredByClaim"`

	// Lifetime accumulators at end of day.
	AccumClaimed         float64 `json:"accumClaimed"`
	AccumConsumedRewards float64 `json:"accumConsumedRewards"`
}

// MonthEarningsAndInfo sums one month's days and carries the forward state.
type MonthEarningsAndInfo struct {
	Month time.Time     `json:"month"`
	Days  []DayEarnings `json:"days"`

	// MonthEarnings is the month's gross rewards accrued. A terminal month
	// accrues zero.
	MonthEarnings float64 `json:"monthEarnings"`

	MonthClaimedAfterTax    float64 `json:"monthClaimedAfterTax"`
	MonthClaimedInCurrency  float64 `json:"monthClaimedInCurrency"`
	MonthReinvestedAfterTax float64 `json:"monthReinvestedAfterTax"`

	DepositsInCurrency float64 `json:"depositsInCurrency"`
	EstimatedGasFees   float64 `json:"estimatedGasFees"`
	UncoveredGasFees   float64 `json:"uncoveredGasFees"`

	// TokenValueForMonth is the month's trend (or custom) value before
	// daily variance.
	TokenValueForMonth float64 `json:"tokenValueForMonth"`

	// End-of-month snapshots.
	DripDepositBalanceEndOfMonth float64 `json:"dripDepositBalanceEndOfMonth"`
	AccumClaimed                 float64 `json:"accumClaimed"`
	AccumConsumedRewards         float64 `json:"accumConsumedRewards"`

	NextActions NextAction `json:"nextActions"`
}

// YearEarnings sums one year's months.
type YearEarnings struct {
	Year   int                                  `json:"year"`
	Months map[time.Month]*MonthEarningsAndInfo `json:"months"`

	TotalYearEarnings           float64 `json:"totalYearEarnings"`
	TotalYearClaimedAfterTax    float64 `json:"totalYearClaimedAfterTax"`
	TotalYearClaimedInCurrency  float64 `json:"totalYearClaimedInCurrency"`
	TotalYearReinvestedAfterTax float64 `json:"totalYearReinvestedAfterTax"`
	DepositsInCurrency          float64 `json:"depositsInCurrency"`

	// Year-over-year accumulators, seeded from the previous year's end.
	AccumClaimed         float64 `json:"accumClaimed"`
	AccumConsumedRewards float64 `json:"accumConsumedRewards"`

	// LastYear marks simulation termination; LastPayoutMonth is the final
	// month that still paid out.
	LastYear        bool     `json:"lastYear"`
	LastPayoutMonth MonthKey `json:"lastPayoutMonth,omitempty"`
}

// WalletEarnings is the complete faucet output for one wallet.
type WalletEarnings struct {
	WalletID     string                `json:"walletId"`
	YearEarnings map[int]*YearEarnings `json:"yearEarnings"`
}
