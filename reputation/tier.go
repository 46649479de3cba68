package reputation

import (
	"math/big"

	"github.com/gagarinchain/claimnet/params"
)

type Tier int

const (
	Bronze Tier = iota
	Silver
	Gold
)

func (t Tier) String() string {
	switch t {
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	default:
		return "bronze"
	}
}

// ClassifyTier maps a score onto tiers: below silver is bronze, gold starts at the gold threshold.
func ClassifyTier(score *big.Int, p *params.Params) Tier {
	switch {
	case score.Cmp(p.GoldThreshold) >= 0:
		return Gold
	case score.Cmp(p.SilverThreshold) >= 0:
		return Silver
	default:
		return Bronze
	}
}

// Multiplier is the influence multiplier of a tier in basis points.
func (t Tier) Multiplier(p *params.Params) uint64 {
	switch t {
	case Silver:
		return p.SilverMultiplier
	case Gold:
		return p.GoldMultiplier
	default:
		return p.BronzeMultiplier
	}
}
