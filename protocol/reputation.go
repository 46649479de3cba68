package protocol

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/state"
)

var InvalidScoreError = common.NewError(common.Validation, "reputation score must not be negative")

type ReputationChanged struct {
	Identity     common.Address
	Base         *big.Int
	LastActivity int64
}

func (e *Engine) SetReputation(ctx context.Context, caller common.Address, identity common.Address, base *big.Int) error {
	return e.execute(ctx, "set_reputation", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, caller, permission.Settle); err != nil {
			return err
		}
		if err := common.CheckIdentity(identity); err != nil {
			return err
		}
		if base == nil || base.Sign() < 0 {
			return InvalidScoreError
		}
		rep := &state.ReputationState{Base: new(big.Int).Set(base), LastActivity: now}
		r.PutReputation(identity, rep)
		r.AddEvent(common.ReputationUpdated, &ReputationChanged{Identity: identity, Base: common.Copy(base), LastActivity: now})
		return nil
	})
}

func (e *Engine) RecordActivity(ctx context.Context, caller common.Address, identity common.Address) error {
	return e.execute(ctx, "record_activity", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, caller, permission.Settle); err != nil {
			return err
		}
		rep, found := r.ReputationForUpdate(identity)
		if !found {
			return reputation.NotRatedError
		}
		rep.LastActivity = now
		r.AddEvent(common.ReputationUpdated, &ReputationChanged{Identity: identity, Base: common.Copy(rep.Base), LastActivity: now})
		return nil
	})
}
