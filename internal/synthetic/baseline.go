package synthetic

type capTier int

const (
	tierSmall capTier = iota
	tierMid
	tierLarge
	tierMega
)

var tierVolume = map[capTier]float64{
	tierMega:  45_000_000,
	tierLarge: 12_000_000,
	tierMid:   4_000_000,
	tierSmall: 1_200_000,
}

type baseline struct {
	symbol     string
	name       string
	price      float64
	change     float64
	sector     string
	tier       capTier
	volatility float64
}

var baselines = []baseline{
	{"NVDA", "NVIDIA Corporation", 875.30, 4.2, "Semiconductors", tierMega, 1.6},
	{"TSLA", "Tesla, Inc.", 182.40, 3.8, "Consumer Cyclical", tierMega, 1.9},
	{"AMD", "Advanced Micro Devices, Inc.", 168.90, 3.1, "Semiconductors", tierLarge, 1.5},
	{"META", "Meta Platforms, Inc.", 498.20, 2.6, "Communication Services", tierMega, 1.2},
	{"AAPL", "Apple Inc.", 189.50, 1.4, "Technology", tierMega, 0.8},
	{"MSFT", "Microsoft Corporation", 415.10, 1.2, "Technology", tierMega, 0.7},
	{"AMZN", "Amazon.com, Inc.", 178.60, 1.9, "Consumer Cyclical", tierMega, 1.0},
	{"GOOGL", "Alphabet Inc.", 152.80, 1.6, "Communication Services", tierMega, 0.9},
	{"NFLX", "Netflix, Inc.", 612.40, 2.2, "Communication Services", tierLarge, 1.3},
	{"PLTR", "Palantir Technologies Inc.", 24.70, 5.4, "Technology", tierLarge, 2.1},
	{"SMCI", "Super Micro Computer, Inc.", 880.00, 6.8, "Technology", tierMid, 2.4},
	{"COIN", "Coinbase Global, Inc.", 228.10, 5.9, "Financial Services", tierMid, 2.2},
	{"MRNA", "Moderna, Inc.", 104.30, 3.3, "Healthcare", tierMid, 1.7},
	{"XOM", "Exxon Mobil Corporation", 113.90, 1.1, "Energy", tierMega, 0.7},
	{"JPM", "JPMorgan Chase & Co.", 196.40, 0.9, "Financial Services", tierMega, 0.6},
	{"UBER", "Uber Technologies, Inc.", 77.20, 2.4, "Technology", tierLarge, 1.2},
	{"SOFI", "SoFi Technologies, Inc.", 8.15, 4.6, "Financial Services", tierSmall, 1.9},
	{"RIVN", "Rivian Automotive, Inc.", 11.40, 5.1, "Consumer Cyclical", tierSmall, 2.3},
}

var sectorVolatility = map[string]float64{
	"Semiconductors":         1.5,
	"Technology":             1.3,
	"Consumer Cyclical":      1.2,
	"Communication Services": 1.1,
	"Healthcare":             1.1,
	"Financial Services":     0.9,
	"Energy":                 1.0,
}

func lookup(symbol string) (baseline, bool) {
	for _, b := range baselines {
		if b.symbol == symbol {
			return b, true
		}
	}
	return baseline{}, false
}
