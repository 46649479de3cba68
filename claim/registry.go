package claim

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

// Registry creates claims and collects votes on them. All changes go into the passed record.
type Registry struct {
	calc *reputation.Calculator
}

func NewRegistry(calc *reputation.Calculator) *Registry {
	return &Registry{calc: calc}
}

func (reg *Registry) Create(r *state.Record, p *params.Params, submitter common.Address, content string, now int64) (*state.Claim, error) {
	if err := common.CheckIdentity(submitter); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, EmptyContentError
	}

	c := state.NewClaim(r.NextClaimID(), submitter, content, now, now+p.VotingWindow)
	r.PutClaim(c)
	r.AddEvent(common.ClaimCreated, &Created{ClaimID: c.ID, Submitter: submitter, Content: content, WindowEnd: c.WindowEnd})
	log.Debugf("Claim %d created by %v, window ends at %d", c.ID, submitter.Hex(), c.WindowEnd)

	return c.Copy(), nil
}

// Vote locks raw stake of the voter and adds its weighted value to one side of the claim.
func (reg *Registry) Vote(ctx context.Context, r *state.Record, p *params.Params, claimID uint64, voter common.Address,
	support bool, raw *big.Int, now int64) (*state.Vote, error) {
	if err := common.CheckIdentity(voter); err != nil {
		return nil, err
	}
	c, found := r.ClaimForUpdate(claimID)
	if !found {
		return nil, errors.Wrapf(ClaimNotFoundError, "claim %d", claimID)
	}
	if now >= c.WindowEnd {
		return nil, errors.Wrapf(WindowClosedError, "claim %d window ended at %d", claimID, c.WindowEnd)
	}
	if c.Settled {
		return nil, AlreadySettledError
	}
	key := state.VoteKey{Claim: claimID, Voter: voter}
	if _, voted := r.Vote(key); voted {
		return nil, DuplicateVoteError
	}
	if raw == nil || raw.Cmp(p.MinStake) < 0 {
		return nil, errors.Wrapf(StakeBelowMinimumError, "stake %v, minimum %v", raw, p.MinStake)
	}
	if err := stake.Lock(r.PoolForUpdate(voter), raw); err != nil {
		return nil, err
	}

	w, err := reg.calc.ComputeEffectiveStake(ctx, voter, raw, p)
	if err != nil {
		return nil, err
	}

	v := &state.Vote{
		Voted:     true,
		Support:   support,
		Stake:     new(big.Int).Set(raw),
		Effective: w.Effective,
		Score:     w.Score,
		CastAt:    now,
	}
	r.PutVote(key, v)

	if support {
		c.WeightedFor.Add(c.WeightedFor, w.Effective)
		c.RawFor.Add(c.RawFor, raw)
	} else {
		c.WeightedAgainst.Add(c.WeightedAgainst, w.Effective)
		c.RawAgainst.Add(c.RawAgainst, raw)
	}
	c.TotalStake.Add(c.TotalStake, raw)

	if rep, found := r.ReputationForUpdate(voter); found {
		rep.LastActivity = now
	}

	r.AddEvent(common.VoteCast, &VoteCast{ClaimID: claimID, Support: support, Weight: w})
	log.Debugf("Vote on claim %d by %v: support %v, raw %v, effective %v", claimID, voter.Hex(), support, raw, w.Effective)

	return v.Copy(), nil
}
