// Package overview rolls per-wallet year results into plan-level statistics:
// totals, the net-positive date, out-of-pocket deposit cost, and the month
// claims first cover that cost.
package overview

import (
	"sort"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

// monthStat is one wallet's state at the end of one month, flattened for
// chronological scans.
type monthStat struct {
	month              time.Time
	walletID           string
	depositBalance     float64
	accumClaimed       float64
	accumConsumed      float64
	claimedInCurrency  float64
	depositsInCurrency float64
	uncoveredGasFees   float64
}

// ComputeFaucet rolls all wallets' faucet results into the plan overview.
func ComputeFaucet(earnings map[string]*domain.WalletEarnings) domain.OverviewInfo {
	info := domain.OverviewInfo{}

	stats := flattenFaucet(earnings)
	for _, st := range stats {
		info.TotalClaimedInCurrency += st.claimedInCurrency
		info.DepositsOutOfPocket += st.depositsInCurrency + st.uncoveredGasFees
	}

	// Lifetime token totals come from each wallet's final month.
	for _, w := range earnings {
		last := finalMonthStat(stats, w.WalletID)
		if last != nil {
			info.TotalClaimed += last.accumClaimed
			info.TotalConsumedRewards += last.accumConsumed
		}
	}
	if info.TotalConsumedRewards > 0 {
		info.PercentageMaxPayoutConsumed = info.TotalClaimed / info.TotalConsumedRewards
	}

	info.NetPositiveUpToDate = netPositiveUpToDate(stats)
	info.DepositsOutOfPocketCoveredBy = coveredBy(stats, info.DepositsOutOfPocket)

	return info
}

// ComputeGarden rolls all wallets' garden results into the plan overview.
func ComputeGarden(earnings map[string]*domain.WalletGardenEarnings) domain.GardenOverviewInfo {
	info := domain.GardenOverviewInfo{}

	var stats []monthStat
	for _, w := range earnings {
		var lastYear *domain.GardenYearEarnings
		for _, year := range w.YearEarnings {
			if lastYear == nil || year.Year > lastYear.Year {
				lastYear = year
			}
			for _, month := range year.Months {
				info.TotalSeedsLost += month.SeedsLostForMonth
				stats = append(stats, monthStat{
					month:              month.Month,
					walletID:           w.WalletID,
					claimedInCurrency:  month.HarvestedInCurrency,
					depositsInCurrency: month.DepositsInCurrency,
					uncoveredGasFees:   month.EstimatedGasFees,
				})
			}
		}
		if lastYear != nil {
			info.TotalPlantBalance += lastYear.PlantBalanceEndOfYear
			info.TotalHarvestedInCurrency += lastYear.AccumClaimedInCurrency
		}
	}

	sortStats(stats)
	for _, st := range stats {
		info.DepositsOutOfPocket += st.depositsInCurrency + st.uncoveredGasFees
	}
	info.DepositsOutOfPocketCoveredBy = coveredBy(stats, info.DepositsOutOfPocket)

	return info
}

// flattenFaucet turns result trees into a chronologically sorted month list.
func flattenFaucet(earnings map[string]*domain.WalletEarnings) []monthStat {
	var stats []monthStat
	for _, w := range earnings {
		for _, year := range w.YearEarnings {
			for _, month := range year.Months {
				stats = append(stats, monthStat{
					month:              month.Month,
					walletID:           w.WalletID,
					depositBalance:     month.DripDepositBalanceEndOfMonth,
					accumClaimed:       month.AccumClaimed,
					accumConsumed:      month.AccumConsumedRewards,
					claimedInCurrency:  month.MonthClaimedInCurrency,
					depositsInCurrency: month.DepositsInCurrency,
					uncoveredGasFees:   month.UncoveredGasFees,
				})
			}
		}
	}
	sortStats(stats)
	return stats
}

func sortStats(stats []monthStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].month.Before(stats[j].month)
	})
}

// finalMonthStat returns the wallet's chronologically last month stat.
func finalMonthStat(stats []monthStat, walletID string) *monthStat {
	var last *monthStat
	for i := range stats {
		if stats[i].walletID == walletID {
			last = &stats[i]
		}
	}
	return last
}

// netPositiveUpToDate scans months in chronological order and reports the
// latest month up to which every wallet with data is net positive:
// depositBalance + (accumConsumed - accumClaimed) - accumClaimed >= 0.
func netPositiveUpToDate(stats []monthStat) domain.MonthKey {
	byMonth := groupByMonth(stats)

	// A wallet's latest known state carries forward into months where it
	// has no row of its own.
	latest := make(map[string]monthStat)

	var result domain.MonthKey
	for _, group := range byMonth {
		for _, st := range group.stats {
			latest[st.walletID] = st
		}

		allPositive := true
		for _, st := range latest {
			net := st.depositBalance + (st.accumConsumed - st.accumClaimed) - st.accumClaimed
			if net < 0 {
				allPositive = false
				break
			}
		}
		if allPositive {
			result = domain.NewMonthKey(group.month)
		}
	}
	return result
}

// coveredBy finds the earliest month where cumulative claimed-in-currency
// meets or exceeds the out-of-pocket cost. Returns the empty key when no
// month ever covers it.
func coveredBy(stats []monthStat, outOfPocket float64) domain.MonthKey {
	if outOfPocket <= 0 {
		return ""
	}

	cumulative := 0.0
	for _, group := range groupByMonth(stats) {
		for _, st := range group.stats {
			cumulative += st.claimedInCurrency
		}
		if cumulative >= outOfPocket {
			return domain.NewMonthKey(group.month)
		}
	}
	return ""
}

// monthGroup is all wallets' stats for one calendar month.
type monthGroup struct {
	month time.Time
	stats []monthStat
}

// groupByMonth buckets sorted stats by calendar month, preserving order.
func groupByMonth(stats []monthStat) []monthGroup {
	var groups []monthGroup
	for _, st := range stats {
		n := len(groups)
		if n == 0 || !groups[n-1].month.Equal(st.month) {
			groups = append(groups, monthGroup{month: st.month})
			n++
		}
		groups[n-1].stats = append(groups[n-1].stats, st)
	}
	return groups
}
