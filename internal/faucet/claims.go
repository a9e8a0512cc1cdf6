package faucet

import (
	"math"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

// ShouldClaimOnDay reports whether the day falls in the month's claim block.
// The block is a contiguous run of days at the configured end of the month,
// sized to round(daysInMonth * (1 - reinvest)).
func ShouldClaimOnDay(date time.Time, policy domain.ClaimDaysPolicy, reinvest float64) bool {
	daysIn := daysInMonth(date.Year(), date.Month())
	claimDays := int(math.Round(float64(daysIn) * (1 - reinvest)))
	if claimDays <= 0 {
		return false
	}

	if policy == domain.ClaimEndOfMonth {
		return date.Day() > daysIn-claimDays
	}
	return date.Day() <= claimDays
}

// whaleTaxBands maps the deposit-balance share of total supply, in whole
// percent, to the additional claim tax. Ten 1%-wide bands, capped at 10%.
var whaleTaxBands = [11]float64{
	0.00, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.10,
}

// WhaleTaxRate looks up the whale tax for a deposit-balance fraction of
// total supply. The fraction rounds to the nearest hundredth before the
// lookup, which also clamps anything above 10% into the top band.
func WhaleTaxRate(fraction float64) float64 {
	band := int(math.Round(fraction * 100))
	if band < 0 {
		band = 0
	}
	if band >= len(whaleTaxBands) {
		band = len(whaleTaxBands) - 1
	}
	return whaleTaxBands[band]
}

// hydrateDue reports whether the hydrate cadence fires on this wallet day.
func hydrateDue(dayIndex int, frequency domain.Frequency) bool {
	switch frequency {
	case domain.EveryOtherDay:
		return dayIndex%2 == 0
	case domain.EveryWeek:
		return dayIndex%7 == 0
	default:
		// multipleTimesADay collapses to daily here: faucet rewards accrue
		// once per day, so there is nothing extra to compound intra-day.
		return true
	}
}
