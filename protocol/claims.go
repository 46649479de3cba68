package protocol

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/state"
)

func (e *Engine) CreateClaim(ctx context.Context, submitter common.Address, content string) (id uint64, err error) {
	err = e.execute(ctx, "create_claim", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		c, err := e.registry.Create(r, p, submitter, content, now)
		if err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	return id, err
}

func (e *Engine) Vote(ctx context.Context, voter common.Address, claimID uint64, support bool, raw *big.Int) (v *state.Vote, err error) {
	err = e.execute(ctx, "vote", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		v, err = e.registry.Vote(ctx, r, p, claimID, voter, support, raw, now)
		return err
	})
	if err == nil {
		metrics.RecordVote(support)
	}
	return v, err
}

// RecordWeight computes the weight raw stake of identity would get right now and publishes the
// breakdown. Nothing is stored.
func (e *Engine) RecordWeight(ctx context.Context, identity common.Address, raw *big.Int) (*reputation.Weight, error) {
	p := e.db.Params()
	if p == nil {
		return nil, NotInitializedError
	}
	w, err := e.calc.ComputeEffectiveStake(ctx, identity, raw, p)
	if err != nil {
		return nil, err
	}
	e.bus.FireEvent(&common.Event{T: common.WeightComputed, Payload: w})
	return w, nil
}

// SettleClaim may be called by anyone once the voting and dispute windows are over.
func (e *Engine) SettleClaim(ctx context.Context, claimID uint64) (res *state.SettlementResult, err error) {
	err = e.execute(ctx, "settle_claim", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		res, err = claim.Settle(r, p, claimID, now)
		return err
	})
	if err == nil {
		metrics.RecordSettlement(res.Passed)
	}
	return res, err
}

func (e *Engine) ClaimSettlementRewards(ctx context.Context, voter common.Address, claimID uint64) (payout *claim.Payout, err error) {
	err = e.execute(ctx, "claim_rewards", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		payout, err = claim.ClaimRewards(r, claimID, voter)
		return err
	})
	if err == nil {
		metrics.RecordValue("rewarded", payout.Reward)
		metrics.RecordValue("returned", payout.Returned)
	}
	return payout, err
}

func (e *Engine) WithdrawSettledStake(ctx context.Context, voter common.Address, claimID uint64) (payout *claim.Payout, err error) {
	err = e.execute(ctx, "withdraw_settled_stake", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		payout, err = claim.WithdrawSettledStake(r, claimID, voter)
		return err
	})
	if err == nil {
		metrics.RecordValue("returned", payout.Returned)
		metrics.RecordValue("burned", payout.Slashed)
	}
	return payout, err
}

func (e *Engine) OpenDispute(ctx context.Context, caller common.Address, claimID uint64, reason string) error {
	return e.execute(ctx, "open_dispute", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, caller, permission.Settle); err != nil {
			return err
		}
		_, err := claim.OpenDispute(r, p, claimID, caller, reason, now)
		return err
	})
}

func (e *Engine) ResolveDispute(ctx context.Context, caller common.Address, claimID uint64) error {
	return e.execute(ctx, "resolve_dispute", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, caller, permission.Settle); err != nil {
			return err
		}
		_, err := claim.ResolveDispute(r, claimID, caller, now)
		return err
	})
}
