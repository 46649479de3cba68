package claim

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

func settledVote(r *state.Record, claimID uint64, voter common.Address) (*state.Vote, *state.SettlementResult, error) {
	if err := common.CheckIdentity(voter); err != nil {
		return nil, nil, err
	}
	c, found := r.Claim(claimID)
	if !found {
		return nil, nil, errors.Wrapf(ClaimNotFoundError, "claim %d", claimID)
	}
	v, found := r.VoteForUpdate(state.VoteKey{Claim: claimID, Voter: voter})
	if !found || !v.Voted {
		return nil, nil, VoteNotFoundError
	}
	res, found := r.Settlement(claimID)
	if !c.Settled || !found {
		return nil, nil, NotSettledError
	}
	return v, res, nil
}

// ClaimRewards pays the winner its share of the reward pool and returns its stake if that has
// not happened yet. The reward is queued as an outgoing transfer on the record.
func ClaimRewards(r *state.Record, claimID uint64, voter common.Address) (*Payout, error) {
	v, res, err := settledVote(r, claimID, voter)
	if err != nil {
		return nil, err
	}
	if v.RewardClaimed {
		return nil, RewardClaimedError
	}
	if res.WinnerWeighted.Sign() == 0 {
		return nil, NoWinnersError
	}
	if v.Support != res.Passed {
		return nil, NotAWinnerError
	}

	payout := &Payout{ClaimID: claimID, Voter: voter, Returned: new(big.Int), Slashed: new(big.Int)}
	payout.Reward = common.MulDiv(v.Effective, res.TotalRewards, res.WinnerWeighted)
	v.RewardClaimed = true

	if !v.StakeReturned {
		payout.Returned = stake.Release(r.PoolForUpdate(voter), v.Stake, payout.Slashed)
		v.StakeReturned = true
		r.AddEvent(common.StakeReturned, payout)
	}
	if payout.Reward.Sign() > 0 {
		if err := r.QueueTransfer(&state.Transfer{Direction: state.Out, Peer: voter, Amount: payout.Reward}); err != nil {
			return nil, err
		}
	}
	r.AddEvent(common.RewardDistributed, payout)
	log.Debugf("Claim %d paid %v reward and returned %v to %v", claimID, payout.Reward, payout.Returned, voter.Hex())

	return payout, nil
}

// WithdrawSettledStake returns the stake of a vote without a reward. A losing vote is charged the
// settlement slash rate, and the charge leaves the pool for good.
func WithdrawSettledStake(r *state.Record, claimID uint64, voter common.Address) (*Payout, error) {
	v, res, err := settledVote(r, claimID, voter)
	if err != nil {
		return nil, err
	}
	if v.StakeReturned {
		return nil, StakeReturnedError
	}

	payout := &Payout{ClaimID: claimID, Voter: voter, Reward: new(big.Int), Slashed: new(big.Int)}
	p := r.PoolForUpdate(voter)
	if v.Support != res.Passed {
		payout.Slashed = common.Percent(v.Stake, res.SlashPercent)
	}
	payout.Returned = stake.Release(p, v.Stake, payout.Slashed)
	v.StakeReturned = true

	r.AddEvent(common.StakeReturned, payout)
	log.Debugf("Claim %d returned %v to %v, %v slashed", claimID, payout.Returned, voter.Hex(), payout.Slashed)

	return payout, nil
}
