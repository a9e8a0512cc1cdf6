package garden

import (
	"math"
	"sort"
	"time"

	"github.com/fr3shw3b/dripcalc-sub000/internal/domain"
	"github.com/fr3shw3b/dripcalc-sub000/internal/trend"
)

// gasFeeValueThreshold: a sow or harvest is skipped when its gas fee exceeds
// this share of the value it would realize.
const gasFeeValueThreshold = 0.25

// walkDay resolves and executes one garden day's schedule. Resolution
// precedence: user-forced day action, then the month's harvest window, then
// the sow schedule optimizer.
func (e *Engine) walkDay(date time.Time, input *domain.MonthInput, monthValue, yield, reinvest float64, frequency domain.Frequency, plantFraction float64, state *walkState) domain.GardenDayEarnings {
	dayValue := trend.ApplyVariance(monthValue, e.rng)
	dayStart := date
	dayEnd := date.Add(24 * time.Hour)

	sim := &daySim{
		spp:    e.settings.SeedsPerPlant,
		yield:  yield,
		plants: state.plants,
		seeds:  state.accumSeeds,
		cursor: dayStart,
	}

	deposits := e.depositEvents(date, input, dayValue, plantFraction)

	var schedule []domain.DayEvent
	action, forced := domain.DayAction(input, date.Year(), int(date.Month()), date.Day())
	switch {
	case forced && action == domain.DayActionNone:
		schedule = e.runWindow(sim, dayEnd, deposits, nil, plantFraction, dayValue)
	case forced && action == domain.DayActionHarvest:
		harvest := e.planHarvest(sim, date, deposits, plantFraction, dayValue, true)
		schedule = e.runWindow(sim, dayEnd, deposits, harvest, plantFraction, dayValue)
	case !forced && e.inHarvestWindow(date, reinvest):
		harvest := e.planHarvest(sim, date, deposits, plantFraction, dayValue, false)
		schedule = e.runWindow(sim, dayEnd, deposits, harvest, plantFraction, dayValue)
	default:
		schedule = e.runSowWindows(sim, dayStart, dayEnd, deposits, frequency, plantFraction, dayValue)
	}

	day := domain.GardenDayEarnings{
		Date:          date,
		TokenValue:    dayValue,
		PlantFraction: plantFraction,
		Schedule:      schedule,
	}
	for _, ev := range schedule {
		switch ev.Kind {
		case domain.EventSow:
			day.PlantsGrown += ev.PlantsGrown
			day.SeedsLost += ev.SeedsLost
		case domain.EventHarvest:
			day.SeedsHarvested += ev.SeedsHarvested
			day.HarvestInCurrency += ev.HarvestInCurrency
		case domain.EventDeposit:
			day.PlantsBought += ev.PlantsBought
			day.DepositsInCurrency += ev.DepositInCurrency
		}
		day.EstimatedGasFees += e.settings.AverageGasFee
	}

	state.plants = sim.plants
	state.accumSeeds = sim.seeds
	state.accumClaimed += day.HarvestInCurrency

	day.PlantBalance = state.plants
	day.SeedsPerDay = e.seedsPerDay(state.plants, yield)
	day.AccumSeeds = state.accumSeeds
	day.AccumClaimedInCurrency = state.accumClaimed

	return day
}

// runSowWindows partitions the day into one window, or two equal windows for
// multipleTimesADay, and runs the schedule optimizer on each in turn.
func (e *Engine) runSowWindows(sim *daySim, dayStart, dayEnd time.Time, deposits []domain.DayEvent, frequency domain.Frequency, plantFraction, dayValue float64) []domain.DayEvent {
	bounds := []time.Time{dayEnd}
	if frequency == domain.MultipleTimesADay {
		bounds = []time.Time{dayStart.Add(12 * time.Hour), dayEnd}
	}

	var schedule []domain.DayEvent
	for _, windowEnd := range bounds {
		var windowDeposits []domain.DayEvent
		for _, dep := range deposits {
			if dep.Timestamp.Before(windowEnd) && !dep.Timestamp.Before(sim.cursor) {
				windowDeposits = append(windowDeposits, dep)
			}
		}

		sow := e.planSow(sim, windowEnd, windowDeposits, plantFraction, dayValue)
		schedule = append(schedule, e.runWindow(sim, windowEnd, windowDeposits, sow, plantFraction, dayValue)...)
	}
	return schedule
}

// planSow runs the schedule optimizer for one window: sow only at the latest
// timestamp at which a whole number of plants can be grown from accumulated
// seeds plus the window's accrual. Returns nil when no whole plant can be
// grown or the sow gas fee exceeds its value threshold.
func (e *Engine) planSow(sim *daySim, windowEnd time.Time, deposits []domain.DayEvent, plantFraction, dayValue float64) *domain.DayEvent {
	projected := sim.clone()
	for _, dep := range deposits {
		projected.advanceTo(dep.Timestamp)
		projected.plants += dep.PlantsBought
	}
	projected.advanceTo(windowEnd)

	plants := int64(math.Floor(projected.seeds / sim.spp))
	if plants < 1 {
		return nil
	}

	value := float64(plants) * plantFraction * dayValue
	if e.settings.AverageGasFee > gasFeeValueThreshold*value {
		return nil
	}

	// Find the last integer crossing: the instant accumulated seeds reach
	// plants*seedsPerPlant, rounded up to a whole second so the sow never
	// lands before the crossing.
	target := float64(plants) * sim.spp
	crossing := sim.clone()
	for _, dep := range deposits {
		if t, ok := crossing.timeToReach(target, dep.Timestamp); ok {
			return sowEventAt(t, plants)
		}
		crossing.advanceTo(dep.Timestamp)
		crossing.plants += dep.PlantsBought
	}
	if t, ok := crossing.timeToReach(target, windowEnd); ok {
		return sowEventAt(t, plants)
	}

	// Rounding in the projection can leave the crossing a hair past the
	// window; sow at the window end.
	return sowEventAt(windowEnd, plants)
}

// planHarvest decides the day's harvest: mid-day, requiring at least one
// whole plant's worth of accumulated seeds, and (unless user-forced) a gas
// fee under the value threshold.
func (e *Engine) planHarvest(sim *daySim, date time.Time, deposits []domain.DayEvent, plantFraction, dayValue float64, userForced bool) *domain.DayEvent {
	midday := date.Add(12 * time.Hour)

	projected := sim.clone()
	for _, dep := range deposits {
		if dep.Timestamp.After(midday) {
			break
		}
		projected.advanceTo(dep.Timestamp)
		projected.plants += dep.PlantsBought
	}
	projected.advanceTo(midday)

	if projected.seeds < sim.spp {
		return nil
	}
	value := projected.seeds / sim.spp * plantFraction * dayValue
	if !userForced && e.settings.AverageGasFee >= gasFeeValueThreshold*value {
		return nil
	}

	return &domain.DayEvent{
		Timestamp: midday,
		Kind:      domain.EventHarvest,
	}
}

// runWindow executes the window's events in timestamp order, accruing seeds
// continuously between them, then advances to the window end.
func (e *Engine) runWindow(sim *daySim, windowEnd time.Time, deposits []domain.DayEvent, planned *domain.DayEvent, plantFraction, dayValue float64) []domain.DayEvent {
	events := make([]domain.DayEvent, 0, len(deposits)+1)
	events = append(events, deposits...)
	if planned != nil {
		events = append(events, *planned)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			// Deposits apply before the action they may have funded.
			return events[i].Kind == domain.EventDeposit && events[j].Kind != domain.EventDeposit
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	out := make([]domain.DayEvent, 0, len(events))
	for _, ev := range events {
		sim.advanceTo(ev.Timestamp)

		switch ev.Kind {
		case domain.EventDeposit:
			sim.plants += ev.PlantsBought
		case domain.EventSow:
			lost := sim.seeds - float64(ev.PlantsGrown)*sim.spp
			if lost < 0 {
				lost = 0
			}
			ev.SeedsLost = lost
			sim.seeds = 0
			sim.plants += ev.PlantsGrown
		case domain.EventHarvest:
			ev.SeedsHarvested = sim.seeds
			ev.HarvestInCurrency = sim.seeds / sim.spp * plantFraction * dayValue
			sim.seeds = 0
		}
		out = append(out, ev)
	}

	sim.advanceTo(windowEnd)
	return out
}

// inHarvestWindow reports whether the date falls in the month's harvest
// block, sized to round(daysInMonth * (1 - reinvest)) at the configured end
// of the month.
func (e *Engine) inHarvestWindow(date time.Time, reinvest float64) bool {
	daysIn := daysInMonth(date.Year(), date.Month())
	harvestDays := int(math.Round(float64(daysIn) * (1 - reinvest)))
	if harvestDays <= 0 {
		return false
	}

	if e.settings.HarvestDays == domain.ClaimEndOfMonth {
		return date.Day() > daysIn-harvestDays
	}
	return date.Day() <= harvestDays
}

// sowEventAt builds a planned sow event.
func sowEventAt(t time.Time, plants int64) *domain.DayEvent {
	return &domain.DayEvent{
		Timestamp:   t,
		Kind:        domain.EventSow,
		PlantsGrown: plants,
	}
}
