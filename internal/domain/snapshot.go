package domain

import "time"

// EarningsSnapshot is one persisted simulation result for a plan. The host
// keeps the latest snapshot around for display continuity; the engine never
// reads it back.
type EarningsSnapshot struct {
	SnapshotID string        `json:"snapshotId"`
	PlanID     string        `json:"planId"`
	ComputedAt time.Time     `json:"computedAt"`
	Earnings   *PlanEarnings `json:"earnings"`
}

// Scheme identifies which daily engine produced a flattened day row.
type Scheme string

// Scheme constants.
const (
	SchemeFaucet Scheme = "faucet"
	SchemeGarden Scheme = "garden"
)

// DayEarningsRow is one simulated day flattened for analytical storage.
// Faucet rows carry the token balance and reward fields; garden rows carry
// the plant balance in Balance and harvested seeds in Earned.
type DayEarningsRow struct {
	SnapshotID string
	PlanID     string
	WalletID   string
	Scheme     Scheme
	Date       time.Time

	Balance           float64
	Earned            float64
	Claimed           float64
	ClaimedInCurrency float64
	GasFees           float64
}

// FlattenDays turns a complete result tree into day rows for bulk insert.
// Rows are keyed by the snapshot they came from so repeated runs of the same
// plan never collide in append-only storage.
func FlattenDays(snapshotID, planID string, earnings *PlanEarnings) []*DayEarningsRow {
	var rows []*DayEarningsRow

	for walletID, w := range earnings.WalletEarnings {
		for _, year := range w.YearEarnings {
			for _, month := range year.Months {
				for _, day := range month.Days {
					rows = append(rows, &DayEarningsRow{
						SnapshotID:        snapshotID,
						PlanID:            planID,
						WalletID:          walletID,
						Scheme:            SchemeFaucet,
						Date:              day.Date,
						Balance:           day.DripDepositBalance,
						Earned:            day.RewardsAccrued,
						Claimed:           day.ClaimAfterTax,
						ClaimedInCurrency: day.ClaimInCurrency,
						GasFees:           day.EstimatedGasFees,
					})
				}
			}
		}
	}

	for walletID, w := range earnings.Garden.WalletEarnings {
		for _, year := range w.YearEarnings {
			for _, month := range year.Months {
				for _, day := range month.Days {
					rows = append(rows, &DayEarningsRow{
						SnapshotID:        snapshotID,
						PlanID:            planID,
						WalletID:          walletID,
						Scheme:            SchemeGarden,
						Date:              day.Date,
						Balance:           float64(day.PlantBalance),
						Earned:            day.SeedsHarvested,
						Claimed:           float64(day.PlantsGrown),
						ClaimedInCurrency: day.HarvestInCurrency,
						GasFees:           day.EstimatedGasFees,
					})
				}
			}
		}
	}

	return rows
}
