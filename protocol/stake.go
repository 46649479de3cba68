package protocol

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
)

type StakeMoved struct {
	Identity common.Address
	Amount   *big.Int
	Total    *big.Int
}

// Deposit pulls amount from the identity's ledger account into its stake pool.
func (e *Engine) Deposit(ctx context.Context, identity common.Address, amount *big.Int) error {
	err := e.execute(ctx, "deposit", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := common.CheckIdentity(identity); err != nil {
			return err
		}
		pool := r.PoolForUpdate(identity)
		if err := stake.Deposit(pool, amount); err != nil {
			return err
		}
		r.AddEvent(common.StakeDeposited, &StakeMoved{Identity: identity, Amount: common.Copy(amount), Total: common.Copy(pool.TotalStaked)})
		return r.QueueTransfer(&state.Transfer{Direction: state.In, Peer: identity, Amount: common.Copy(amount)})
	})
	if err == nil {
		metrics.RecordValue("deposited", amount)
	}
	return err
}

// Withdraw sends unlocked stake back to the identity's ledger account.
func (e *Engine) Withdraw(ctx context.Context, identity common.Address, amount *big.Int) error {
	err := e.execute(ctx, "withdraw", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := common.CheckIdentity(identity); err != nil {
			return err
		}
		pool := r.PoolForUpdate(identity)
		if err := stake.Withdraw(pool, amount); err != nil {
			return err
		}
		r.AddEvent(common.StakeWithdrawn, &StakeMoved{Identity: identity, Amount: common.Copy(amount), Total: common.Copy(pool.TotalStaked)})
		return r.QueueTransfer(&state.Transfer{Direction: state.Out, Peer: identity, Amount: common.Copy(amount)})
	})
	if err == nil {
		metrics.RecordValue("withdrawn", amount)
	}
	return err
}
