// Package trend models a token's fiat value over time. A configured
// long-term trend moves the value from its current level toward a target
// over a trend period, and a bounded daily variance simulates price noise
// on top of the monthly value. The package is pure: callers own the random
// source and identical inputs produce identical outputs.
package trend

import (
	"errors"
	"fmt"
	"time"
)

// Trend identifies the direction a token value moves over the trend period.
type Trend string

// Trend constants.
const (
	Downtrend Trend = "downtrend"
	Uptrend   Trend = "uptrend"
	Stable    Trend = "stable"
)

// TrendPeriod is the number of years over which the value moves from its
// start value toward the target value.
type TrendPeriod string

// TrendPeriod constants.
const (
	OneYear   TrendPeriod = "oneYear"
	TwoYears  TrendPeriod = "twoYears"
	FiveYears TrendPeriod = "fiveYears"
	TenYears  TrendPeriod = "tenYears"
)

// Package errors.
var (
	// ErrInvalidTrend is returned for an unknown trend identifier.
	ErrInvalidTrend = errors.New("invalid trend")

	// ErrInvalidTrendPeriod is returned for an unknown trend period.
	ErrInvalidTrendPeriod = errors.New("invalid trend period")
)

// Valid reports whether t is a known trend identifier.
func (t Trend) Valid() bool {
	switch t {
	case Downtrend, Uptrend, Stable:
		return true
	}
	return false
}

// Valid reports whether p is a known trend period.
func (p TrendPeriod) Valid() bool {
	_, ok := progressTables[p]
	return ok
}

// Years returns the period span in years.
func (p TrendPeriod) Years() int {
	return len(progressTables[p])
}

// stableTerminalFraction is where the stable trend settles once the trend
// period has fully elapsed.
const stableTerminalFraction = 0.375

// ValueForMonth returns the token's modelled fiat value for the month
// containing monthDate.
//
// The trend's fractional progress is looked up by (years since trend start,
// calendar month) in a fixed table for the period; once the elapsed years
// exceed the table's span the fraction is clamped to the trend's terminal
// value (0 for downtrend, 1 for uptrend, 0.375 for stable).
//
// lastCustomValueDate, when non-nil, resets the trend's effective start to
// one month after that date: months where the user supplied an explicit
// value are excluded from trend computation.
func ValueForMonth(startDate, monthDate time.Time, startValue, targetValue float64, tr Trend, period TrendPeriod, lastCustomValueDate *time.Time) (float64, error) {
	if !tr.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrend, tr)
	}
	if !period.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrendPeriod, period)
	}

	effectiveStart := startDate
	if lastCustomValueDate != nil {
		shifted := lastCustomValueDate.AddDate(0, 1, 0)
		if shifted.After(effectiveStart) {
			effectiveStart = shifted
		}
	}

	progress := progressFor(effectiveStart, monthDate, period)

	switch tr {
	case Downtrend:
		// Fraction runs 1 -> 0: value decays from start to target.
		fraction := 1 - progress
		return targetValue + fraction*(startValue-targetValue), nil
	case Uptrend:
		return startValue + progress*(targetValue-startValue), nil
	default: // Stable
		// The synthetic bound B is placed so that the terminal fraction
		// lands exactly on the target. For a falling start (start above
		// target) B is a lower bound; for a rising start it is an upper
		// bound. Both cases use the same expression.
		fraction := 1 - (1-stableTerminalFraction)*progress
		bound := (targetValue - stableTerminalFraction*startValue) / (1 - stableTerminalFraction)
		return bound + fraction*(startValue-bound), nil
	}
}

// progressFor looks up the fractional progress (0..1) for monthDate relative
// to the trend start, clamping past the end of the period's table.
func progressFor(start, monthDate time.Time, period TrendPeriod) float64 {
	table := progressTables[period]

	months := monthsBetween(start, monthDate)
	if months < 0 {
		months = 0
	}
	years := months / 12
	if years >= len(table) {
		return 1
	}
	return table[years][int(monthDate.Month())-1]
}

// monthsBetween counts whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
