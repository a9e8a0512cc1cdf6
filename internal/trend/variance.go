package trend

import "math/rand"

// varianceBound is the half-width of the daily variance band: a day's value
// stays within +/- 7.5% of the monthly trend value.
const varianceBound = 0.075

// ApplyVariance draws one daily value around the monthly value. The draw is
// cubically weighted toward the mean: a uniform sample in [-1, 1] is cubed,
// which concentrates mass near zero while keeping the full band reachable.
// The caller owns the random source, so simulations are reproducible for a
// fixed seed.
func ApplyVariance(monthValue float64, rng *rand.Rand) float64 {
	x := rng.Float64()*2 - 1
	return monthValue * (1 + varianceBound*x*x*x)
}
