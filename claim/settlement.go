package claim

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

// Passed applies the threshold rule with floor division. Zero total weight never passes.
func Passed(weightedFor, weightedAgainst *big.Int, threshold uint64) bool {
	total := new(big.Int).Add(weightedFor, weightedAgainst)
	if total.Sign() == 0 {
		return false
	}
	pct := common.MulDiv(weightedFor, big.NewInt(100), total)
	return pct.Cmp(new(big.Int).SetUint64(threshold)) >= 0
}

// ApproximateLoserRaw estimates the raw stake of the losing side from its share of the weight.
// It is only used for claims that carry no per-side raw totals.
func ApproximateLoserRaw(totalRaw, loserWeighted, totalWeighted *big.Int) *big.Int {
	if totalWeighted.Sign() == 0 {
		return new(big.Int)
	}
	return common.MulDiv(totalRaw, loserWeighted, totalWeighted)
}

// SettleAt is the earliest time a claim may be settled.
func SettleAt(c *state.Claim, p *params.Params) int64 {
	return c.WindowEnd + p.DisputeWindow
}

// Settle freezes the claim and writes its one settlement result.
func Settle(r *state.Record, p *params.Params, claimID uint64, now int64) (*state.SettlementResult, error) {
	c, found := r.ClaimForUpdate(claimID)
	if !found {
		return nil, errors.Wrapf(ClaimNotFoundError, "claim %d", claimID)
	}
	if c.Settled {
		return nil, AlreadySettledError
	}
	if at := SettleAt(c, p); now < at {
		return nil, errors.Wrapf(WindowOpenError, "claim %d settles at %d", claimID, at)
	}
	if d, found := r.Dispute(claimID); found && d.Active {
		return nil, ActiveDisputeError
	}
	if c.TotalStake.Sign() == 0 {
		return nil, NoVotesCastError
	}

	res := compute(c, p)
	res.SettledAt = now
	c.Settled = true
	r.PutSettlement(res)

	r.AddEvent(common.ClaimSettled, &Settled{
		ClaimID:   claimID,
		Passed:    res.Passed,
		Rewards:   common.Copy(res.TotalRewards),
		Slashed:   common.Copy(res.TotalSlashed),
		Retained:  common.Copy(res.Retained),
		SettledAt: now,
	})
	log.Infof("Claim %d settled: passed %v, slashed %v, rewards %v", claimID, res.Passed, res.TotalSlashed, res.TotalRewards)

	return res.Copy(), nil
}

func compute(c *state.Claim, p *params.Params) *state.SettlementResult {
	passed := Passed(c.WeightedFor, c.WeightedAgainst, p.ThresholdPercent)

	winnerW, loserW := c.WeightedFor, c.WeightedAgainst
	winnerRaw, loserRaw := c.RawFor, c.RawAgainst
	if !passed {
		winnerW, loserW = loserW, winnerW
		winnerRaw, loserRaw = loserRaw, winnerRaw
	}
	if !c.HasSideTotals() {
		loserRaw = ApproximateLoserRaw(c.TotalStake, loserW, c.TotalWeighted())
		winnerRaw = common.SubFloor(c.TotalStake, loserRaw)
	}

	slashed := common.Percent(loserRaw, p.SlashPercent)
	rewards := common.Percent(slashed, p.RewardPercent)
	if winnerW.Sign() == 0 {
		// nobody can claim
		rewards = new(big.Int)
	}

	return &state.SettlementResult{
		ClaimID:        c.ID,
		Passed:         passed,
		TotalRewards:   rewards,
		TotalSlashed:   slashed,
		Retained:       new(big.Int).Sub(slashed, rewards),
		WinnerWeighted: common.Copy(winnerW),
		LoserWeighted:  common.Copy(loserW),
		WinnerRaw:      common.Copy(winnerRaw),
		LoserRaw:       common.Copy(loserRaw),
		SlashPercent:   p.SlashPercent,
	}
}
