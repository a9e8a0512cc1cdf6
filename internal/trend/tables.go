package trend

// progressTables holds the fixed fractional-progress tables, one row per
// year since trend start and one column per calendar month. The curve is a
// cosine ease: slow at the ends of the period, fastest in the middle.
var progressTables = map[TrendPeriod][][12]float64{
	OneYear: {
		{0.0170, 0.0670, 0.1464, 0.2500, 0.3706, 0.5000, 0.6294, 0.7500, 0.8536, 0.9330, 0.9830, 1.0000},
	},
	TwoYears: {
		{0.0043, 0.0170, 0.0381, 0.0670, 0.1033, 0.1464, 0.1956, 0.2500, 0.3087, 0.3706, 0.4347, 0.5000},
		{0.5653, 0.6294, 0.6913, 0.7500, 0.8044, 0.8536, 0.8967, 0.9330, 0.9619, 0.9830, 0.9957, 1.0000},
	},
	FiveYears: {
		{0.0007, 0.0027, 0.0062, 0.0109, 0.0170, 0.0245, 0.0332, 0.0432, 0.0545, 0.0670, 0.0807, 0.0955},
		{0.1114, 0.1284, 0.1464, 0.1654, 0.1853, 0.2061, 0.2277, 0.2500, 0.2730, 0.2966, 0.3208, 0.3455},
		{0.3706, 0.3960, 0.4218, 0.4477, 0.4738, 0.5000, 0.5262, 0.5523, 0.5782, 0.6040, 0.6294, 0.6545},
		{0.6792, 0.7034, 0.7270, 0.7500, 0.7723, 0.7939, 0.8147, 0.8346, 0.8536, 0.8716, 0.8886, 0.9045},
		{0.9193, 0.9330, 0.9455, 0.9568, 0.9668, 0.9755, 0.9830, 0.9891, 0.9938, 0.9973, 0.9993, 1.0000},
	},
	TenYears: {
		{0.0002, 0.0007, 0.0015, 0.0027, 0.0043, 0.0062, 0.0084, 0.0109, 0.0138, 0.0170, 0.0206, 0.0245},
		{0.0287, 0.0332, 0.0381, 0.0432, 0.0487, 0.0545, 0.0606, 0.0670, 0.0737, 0.0807, 0.0879, 0.0955},
		{0.1033, 0.1114, 0.1198, 0.1284, 0.1373, 0.1464, 0.1558, 0.1654, 0.1753, 0.1853, 0.1956, 0.2061},
		{0.2168, 0.2277, 0.2388, 0.2500, 0.2614, 0.2730, 0.2847, 0.2966, 0.3087, 0.3208, 0.3331, 0.3455},
		{0.3580, 0.3706, 0.3833, 0.3960, 0.4089, 0.4218, 0.4347, 0.4477, 0.4608, 0.4738, 0.4869, 0.5000},
		{0.5131, 0.5262, 0.5392, 0.5523, 0.5653, 0.5782, 0.5911, 0.6040, 0.6167, 0.6294, 0.6420, 0.6545},
		{0.6669, 0.6792, 0.6913, 0.7034, 0.7153, 0.7270, 0.7386, 0.7500, 0.7612, 0.7723, 0.7832, 0.7939},
		{0.8044, 0.8147, 0.8247, 0.8346, 0.8442, 0.8536, 0.8627, 0.8716, 0.8802, 0.8886, 0.8967, 0.9045},
		{0.9121, 0.9193, 0.9263, 0.9330, 0.9394, 0.9455, 0.9513, 0.9568, 0.9619, 0.9668, 0.9713, 0.9755},
		{0.9794, 0.9830, 0.9862, 0.9891, 0.9916, 0.9938, 0.9957, 0.9973, 0.9985, 0.9993, 0.9998, 1.0000},
	},
}
