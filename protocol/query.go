package protocol

import (
	"math/big"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

// Reads go straight to the committed state and never wait for the engine lock.

func (e *Engine) Claim(id uint64) (*state.Claim, error) {
	c, found := e.db.Claim(id)
	if !found {
		return nil, errors.Wrapf(claim.ClaimNotFoundError, "claim %d", id)
	}
	return c, nil
}

func (e *Engine) VoteOf(claimID uint64, voter common.Address) (*state.Vote, error) {
	v, found := e.db.Vote(state.VoteKey{Claim: claimID, Voter: voter})
	if !found {
		return nil, claim.VoteNotFoundError
	}
	return v, nil
}

func (e *Engine) Votes(claimID uint64) map[common.Address]*state.Vote {
	return e.db.Votes(claimID)
}

func (e *Engine) Settlement(claimID uint64) (*state.SettlementResult, error) {
	res, found := e.db.Settlement(claimID)
	if !found {
		return nil, claim.NotSettledError
	}
	return res, nil
}

func (e *Engine) Pool(identity common.Address) *state.StakePool {
	return e.db.Pool(identity)
}

func (e *Engine) Available(identity common.Address) *big.Int {
	return e.db.Pool(identity).Available()
}

func (e *Engine) SlashHistory(identity common.Address) []*state.SlashRecord {
	return e.db.SlashAccount(identity).History
}

func (e *Engine) LifetimeSlashed(identity common.Address) *big.Int {
	return e.db.SlashAccount(identity).Lifetime
}

func (e *Engine) EffectiveReputation(identity common.Address) (*big.Int, error) {
	st, found := e.db.Reputation(identity)
	if !found {
		return nil, reputation.NotRatedError
	}
	p := e.db.Params()
	if p == nil {
		return nil, NotInitializedError
	}
	return reputation.EffectiveReputation(st, p, e.clock.Now()), nil
}

func (e *Engine) Tier(identity common.Address) (reputation.Tier, uint64, error) {
	score, err := e.EffectiveReputation(identity)
	if err != nil {
		return reputation.Bronze, 0, err
	}
	p := e.db.Params()
	t := reputation.ClassifyTier(score, p)
	return t, t.Multiplier(p), nil
}

func (e *Engine) Params() *params.Params {
	return e.db.Params()
}

func (e *Engine) Paused() bool {
	return e.db.Meta().Paused
}

func (e *Engine) HasCapability(identity common.Address, c permission.Capability) bool {
	return e.db.Role(identity).Has(c)
}

// DueClaims lists unsettled claims whose voting and dispute windows are over.
func (e *Engine) DueClaims() []uint64 {
	p := e.db.Params()
	if p == nil {
		return nil
	}
	return e.db.DueClaims(e.clock.Now(), p.DisputeWindow)
}
