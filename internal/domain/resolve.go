package domain

// Override resolution is a fixed three-level chain per field family:
// month override -> plan setting -> global default. One pure function per
// family so the fallback order lives in exactly one place.

// ResolveReinvest returns the reinvest fraction for a month.
func ResolveReinvest(mi *MonthInput, planDefault float64) float64 {
	if mi != nil && mi.Reinvest != nil {
		return *mi.Reinvest
	}
	return planDefault
}

// ResolveHydrateFrequency returns the hydrate frequency for a month.
func ResolveHydrateFrequency(mi *MonthInput, planDefault Frequency) Frequency {
	if mi != nil && mi.HydrateFrequency != nil {
		return *mi.HydrateFrequency
	}
	if planDefault.Valid() {
		return planDefault
	}
	return EveryDay
}

// ResolveSowFrequency returns the sow frequency for a month.
func ResolveSowFrequency(mi *MonthInput, planDefault Frequency) Frequency {
	if mi != nil && mi.SowFrequency != nil {
		return *mi.SowFrequency
	}
	if planDefault.Valid() {
		return planDefault
	}
	return EveryDay
}

// ResolveTokenValue returns the month's custom token value, or nil when the
// trend model should supply it.
func ResolveTokenValue(mi *MonthInput) *float64 {
	if mi == nil {
		return nil
	}
	return mi.TokenValue
}

// ResolveGardenTokenValue returns the month's custom garden LP value, or nil
// when the trend model should supply it.
func ResolveGardenTokenValue(mi *MonthInput) *float64 {
	if mi == nil || mi.GardenValues == nil {
		return nil
	}
	return mi.GardenValues.TokenValue
}

// ResolveGardenYield returns the garden daily yield for a month.
func ResolveGardenYield(mi *MonthInput, planDefault float64) float64 {
	if mi != nil && mi.GardenValues != nil && mi.GardenValues.YieldPercentage != nil {
		return *mi.GardenValues.YieldPercentage
	}
	return planDefault
}

// ResolvePlantFraction returns the month's custom plant fraction, or nil when
// the declining time-scale model should supply it.
func ResolvePlantFraction(mi *MonthInput) *float64 {
	if mi == nil || mi.GardenValues == nil {
		return nil
	}
	return mi.GardenValues.PlantFraction
}

// DayAction returns the forced action for an exact date, if any.
func DayAction(mi *MonthInput, year int, month, day int) (DayActionKind, bool) {
	if mi == nil {
		return "", false
	}
	for _, o := range mi.DayActions {
		if o.Date.Year() == year && int(o.Date.Month()) == month && o.Date.Day() == day {
			return o.Action, true
		}
	}
	return "", false
}

// DepositsForDay returns the month's deposits that land on dayOfMonth.
func DepositsForDay(mi *MonthInput, dayOfMonth int) []Deposit {
	if mi == nil {
		return nil
	}
	var out []Deposit
	for _, d := range mi.Deposits {
		if d.DayOfMonth == dayOfMonth {
			out = append(out, d)
		}
	}
	return out
}
