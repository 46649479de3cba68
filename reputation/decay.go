package reputation

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
)

// EpochsInactive is the number of whole epochs elapsed since the last activity.
func EpochsInactive(st *state.ReputationState, p *params.Params, now int64) uint64 {
	if now <= st.LastActivity || p.EpochDuration <= 0 {
		return 0
	}
	return uint64((now - st.LastActivity) / p.EpochDuration)
}

// DecayPercent returns the decay in basis points applied after the given inactivity.
func DecayPercent(epochs uint64, p *params.Params) uint64 {
	if epochs <= p.InactivityThreshold {
		return 0
	}
	over := epochs - p.InactivityThreshold
	if p.DecayRatePerEpoch != 0 && over > p.MaxDecayPercent/p.DecayRatePerEpoch {
		return p.MaxDecayPercent
	}
	decay := over * p.DecayRatePerEpoch
	if decay > p.MaxDecayPercent {
		return p.MaxDecayPercent
	}
	return decay
}

// EffectiveReputation derives the current reputation from the stored base and the inactivity.
// Nothing derived here is ever stored.
func EffectiveReputation(st *state.ReputationState, p *params.Params, now int64) *big.Int {
	decay := DecayPercent(EpochsInactive(st, p, now), p)
	if decay == 0 {
		return common.Copy(st.Base)
	}
	basis := new(big.Int).SetUint64(params.Basis)
	keep := new(big.Int).SetUint64(params.Basis - decay)
	return common.MulDiv(st.Base, keep, basis)
}

// StateReader is the part of the protocol state the decay engine reads.
type StateReader interface {
	Reputation(identity common.Address) (*state.ReputationState, bool)
	Params() *params.Params
}

// DecaySource exposes decayed reputation as an oracle, so a node can weight votes by its own
// reputation book instead of an external service.
type DecaySource struct {
	reader StateReader
	clock  common.Clock
}

func NewDecaySource(reader StateReader, clock common.Clock) *DecaySource {
	return &DecaySource{reader: reader, clock: clock}
}

func (d *DecaySource) IsActive(ctx context.Context) (bool, error) {
	return d.reader.Params() != nil, nil
}

func (d *DecaySource) Score(ctx context.Context, identity common.Address) (*big.Int, error) {
	st, found := d.reader.Reputation(identity)
	if !found {
		return nil, NotRatedError
	}
	return EffectiveReputation(st, d.reader.Params(), d.clock.Now()), nil
}
