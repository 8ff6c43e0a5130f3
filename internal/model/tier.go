package model

// Tier is a coarse institution classification used for portfolio-risk
// reporting. It is derived from the institution name by keyword heuristics,
// not from any regulatory register.
type Tier string

const (
	Tier1     Tier = "tier-1" // general commercial banks
	Tier2     Tier = "tier-2" // savings banks, cooperatives, credit unions
	TierOther Tier = "other"  // brokerages and anything unrecognized
)
