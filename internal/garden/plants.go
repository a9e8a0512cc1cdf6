package garden

import (
	"math"
	"sort"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
)

// daySim tracks seed accrual within one day at per-second precision.
// Cursor only moves forward; seeds accrue continuously at the current
// plant balance's rate.
type daySim struct {
	spp    float64
	yield  float64
	plants int64
	seeds  float64
	cursor time.Time
}

// rate is the seed accrual per second.
func (s *daySim) rate() float64 {
	return float64(s.plants) * s.spp * s.yield / secondsPerDay
}

// advanceTo accrues seeds up to t and moves the cursor.
func (s *daySim) advanceTo(t time.Time) {
	if !t.After(s.cursor) {
		return
	}
	s.seeds += s.rate() * t.Sub(s.cursor).Seconds()
	s.cursor = t
}

// clone copies the simulator for lookahead projections.
func (s *daySim) clone() *daySim {
	c := *s
	return &c
}

// timeToReach returns the instant, rounded up to a whole second, at which
// accumulated seeds reach target, if that happens at or before limit at the
// current rate. The receiver is not advanced.
func (s *daySim) timeToReach(target float64, limit time.Time) (time.Time, bool) {
	if s.seeds >= target {
		return s.cursor, true
	}
	r := s.rate()
	if r <= 0 {
		return time.Time{}, false
	}
	seconds := math.Ceil((target - s.seeds) / r)
	t := s.cursor.Add(time.Duration(seconds) * time.Second)
	if t.After(limit) {
		return time.Time{}, false
	}
	return t, true
}

// PlantsFromDripBUSDLP converts an LP token amount to whole plants at the
// current plant fraction. Remainders are intentionally not convertible to
// partial plants; excess value stays in the LP token balance outside this
// engine.
func PlantsFromDripBUSDLP(amount, plantFraction float64) int64 {
	if plantFraction <= 0 {
		return 0
	}
	return int64(math.Floor(amount / plantFraction))
}

// DecliningPlantLPRatioValue is the plant-to-LP-value fraction at time t:
// a linear decline from max to min between the wallet start and the plan's
// final year, clamped at both ends.
func DecliningPlantLPRatioValue(t, start, end time.Time, min, max float64) float64 {
	if !end.After(start) || !t.After(start) {
		return max
	}
	if !t.Before(end) {
		return min
	}
	elapsed := t.Sub(start).Seconds() / end.Sub(start).Seconds()
	return max - elapsed*(max-min)
}

// depositEvents converts the day's deposits into deposit events, ordered by
// timestamp. Fiat amounts convert through the day's varied LP value after
// fee deductions; the result buys whole plants only.
func (e *Engine) depositEvents(date time.Time, input *domain.MonthInput, dayValue, plantFraction float64) []domain.DayEvent {
	deposits := domain.DepositsForDay(input, date.Day())
	if len(deposits) == 0 {
		return nil
	}

	events := make([]domain.DayEvent, 0, len(deposits))
	for _, dep := range deposits {
		lpTokens := dep.AmountInTokens
		if dep.AmountInCurrency > 0 {
			net := dep.AmountInCurrency*(1-e.settings.ExchangeFeePct) - e.settings.FeeBuffer
			if net > 0 {
				lpTokens += net / dayValue
			}
		}

		events = append(events, domain.DayEvent{
			Timestamp:         depositInstant(date, dep.Timestamp),
			Kind:              domain.EventDeposit,
			PlantsBought:      PlantsFromDripBUSDLP(lpTokens, plantFraction),
			DepositInCurrency: dep.AmountInCurrency,
			DepositInLPTokens: lpTokens,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}

// depositInstant places a deposit inside the simulated day: the deposit's
// own clock time when it falls on that day, mid-day otherwise.
func depositInstant(date, ts time.Time) time.Time {
	if ts.Year() == date.Year() && ts.Month() == date.Month() && ts.Day() == date.Day() {
		return ts
	}
	return date.Add(12 * time.Hour)
}
