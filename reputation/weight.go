package reputation

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
)

var ZeroStakeError = common.NewError(common.Validation, "stake must be positive")

// Weight is the breakdown of one effective stake computation.
type Weight struct {
	Identity  common.Address
	Raw       *big.Int
	Effective *big.Int
	Score     *big.Int
	Fallback  bool
}

// StakeWeigher turns a raw stake into an effective stake. Implementations never fail on oracle
// trouble; they degrade to a default.
type StakeWeigher interface {
	Weigh(ctx context.Context, identity common.Address, raw *big.Int, p *params.Params) *Weight
}

// FlatWeigher counts every unit of stake once.
type FlatWeigher struct{}

func (FlatWeigher) Weigh(ctx context.Context, identity common.Address, raw *big.Int, p *params.Params) *Weight {
	return &Weight{
		Identity:  identity,
		Raw:       new(big.Int).Set(raw),
		Effective: new(big.Int).Set(raw),
		Score:     new(big.Int).Set(params.Scale),
	}
}

// ReputationWeigher scales stake by the oracle score bounded to [MinScore, MaxScore].
type ReputationWeigher struct {
	Source Source
}

func (w *ReputationWeigher) Weigh(ctx context.Context, identity common.Address, raw *big.Int, p *params.Params) *Weight {
	res := Query(ctx, w.Source, identity)
	score := res.Score
	fallback := !res.Usable()
	if fallback {
		if res.Err != nil {
			log.Warningf("Reputation source failed for %v, using default score: %v", identity.Hex(), res.Err)
			metrics.RecordOracleFallback("error")
		} else {
			log.Debugf("Reputation source inactive, using default score for %v", identity.Hex())
			metrics.RecordOracleFallback("inactive")
		}
		score = p.DefaultScore
	}
	bounded := common.Clamp(score, p.MinScore, p.MaxScore)

	return &Weight{
		Identity:  identity,
		Raw:       new(big.Int).Set(raw),
		Effective: common.MulDiv(raw, bounded, params.Scale),
		Score:     bounded,
		Fallback:  fallback,
	}
}

// Calculator picks the weighing strategy by the weighting switch of the parameters.
type Calculator struct {
	flat     StakeWeigher
	weighted StakeWeigher
}

func NewCalculator(src Source) *Calculator {
	return &Calculator{flat: FlatWeigher{}, weighted: &ReputationWeigher{Source: src}}
}

func NewCalculatorWith(flat, weighted StakeWeigher) *Calculator {
	return &Calculator{flat: flat, weighted: weighted}
}

// ComputeEffectiveStake returns the effective stake of raw for identity and the score it used.
func (c *Calculator) ComputeEffectiveStake(ctx context.Context, identity common.Address, raw *big.Int, p *params.Params) (*Weight, error) {
	if !common.IsPositive(raw) {
		return nil, ZeroStakeError
	}
	if !p.WeightingEnabled {
		return c.flat.Weigh(ctx, identity, raw, p), nil
	}
	return c.weighted.Weigh(ctx, identity, raw, p), nil
}
