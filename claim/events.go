package claim

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/reputation"
)

type Created struct {
	ClaimID   uint64
	Submitter common.Address
	Content   string
	WindowEnd int64
}

// VoteCast carries the weight breakdown computed at vote time.
type VoteCast struct {
	ClaimID uint64
	Support bool
	Weight  *reputation.Weight
}

type Settled struct {
	ClaimID   uint64
	Passed    bool
	Rewards   *big.Int
	Slashed   *big.Int
	Retained  *big.Int
	SettledAt int64
}

// Payout is the value one payout call released to a voter. Returned is unlocked stake,
// Slashed is stake burned from a losing vote.
type Payout struct {
	ClaimID  uint64
	Voter    common.Address
	Reward   *big.Int
	Returned *big.Int
	Slashed  *big.Int
}

type DisputeChanged struct {
	ClaimID uint64
	Actor   common.Address
	Reason  string
	Active  bool
}
