package currency

// BaseUnit is the base-unit factor applied when a purchase is settled: one
// sold token moves 10^18 asset base units to the buyer, for every listed
// asset regardless of its declared precision.
const BaseUnit = uint64(1_000_000_000_000_000_000)

type TokenSymbol string

const (
	TokenSymbol_UnKnown TokenSymbol = ""
	TokenSymbol_Native              = "TPA"
)
