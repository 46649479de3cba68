package state

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
)

// Claim is a proposition under verification. Totals only grow until Settled flips, then freeze.
type Claim struct {
	ID              uint64
	Submitter       common.Address
	Content         string
	CreatedAt       int64
	WindowEnd       int64
	Settled         bool
	WeightedFor     *big.Int
	WeightedAgainst *big.Int
	TotalStake      *big.Int
	RawFor          *big.Int
	RawAgainst      *big.Int
}

func NewClaim(id uint64, submitter common.Address, content string, now, windowEnd int64) *Claim {
	return &Claim{
		ID:              id,
		Submitter:       submitter,
		Content:         content,
		CreatedAt:       now,
		WindowEnd:       windowEnd,
		WeightedFor:     new(big.Int),
		WeightedAgainst: new(big.Int),
		TotalStake:      new(big.Int),
		RawFor:          new(big.Int),
		RawAgainst:      new(big.Int),
	}
}

func (c *Claim) TotalWeighted() *big.Int {
	return new(big.Int).Add(c.WeightedFor, c.WeightedAgainst)
}

// HasSideTotals is false for claims whose per-side raw totals do not add up to the raw total.
func (c *Claim) HasSideTotals() bool {
	return new(big.Int).Add(c.RawFor, c.RawAgainst).Cmp(c.TotalStake) == 0
}

func (c *Claim) Copy() *Claim {
	cp := *c
	cp.WeightedFor = common.Copy(c.WeightedFor)
	cp.WeightedAgainst = common.Copy(c.WeightedAgainst)
	cp.TotalStake = common.Copy(c.TotalStake)
	cp.RawFor = common.Copy(c.RawFor)
	cp.RawAgainst = common.Copy(c.RawAgainst)
	return &cp
}

type VoteKey struct {
	Claim uint64
	Voter common.Address
}

// Vote is frozen once cast, except for the two payout flags which flip false to true once each.
type Vote struct {
	Voted         bool
	Support       bool
	Stake         *big.Int
	Effective     *big.Int
	Score         *big.Int
	CastAt        int64
	RewardClaimed bool
	StakeReturned bool
}

func (v *Vote) Copy() *Vote {
	cp := *v
	cp.Stake = common.Copy(v.Stake)
	cp.Effective = common.Copy(v.Effective)
	cp.Score = common.Copy(v.Score)
	return &cp
}

// SettlementResult is written once per claim and never recomputed. SlashPercent is the rate
// losers are charged on withdrawal, fixed at settlement.
type SettlementResult struct {
	ClaimID        uint64
	Passed         bool
	TotalRewards   *big.Int
	TotalSlashed   *big.Int
	Retained       *big.Int
	WinnerWeighted *big.Int
	LoserWeighted  *big.Int
	WinnerRaw      *big.Int
	LoserRaw       *big.Int
	SettledAt      int64
	SlashPercent   uint64
}

func (s *SettlementResult) Copy() *SettlementResult {
	cp := *s
	cp.TotalRewards = common.Copy(s.TotalRewards)
	cp.TotalSlashed = common.Copy(s.TotalSlashed)
	cp.Retained = common.Copy(s.Retained)
	cp.WinnerWeighted = common.Copy(s.WinnerWeighted)
	cp.LoserWeighted = common.Copy(s.LoserWeighted)
	cp.WinnerRaw = common.Copy(s.WinnerRaw)
	cp.LoserRaw = common.Copy(s.LoserRaw)
	return &cp
}

// StakePool is the raw custody ledger of one identity.
type StakePool struct {
	TotalStaked  *big.Int
	ActiveStakes *big.Int
}

func NewStakePool() *StakePool {
	return &StakePool{TotalStaked: new(big.Int), ActiveStakes: new(big.Int)}
}

// Available is totalStaked - activeStakes clamped at zero; slashing may leave the pool
// with more locked than it holds.
func (p *StakePool) Available() *big.Int {
	return common.SubFloor(p.TotalStaked, p.ActiveStakes)
}

func (p *StakePool) Copy() *StakePool {
	return &StakePool{TotalStaked: common.Copy(p.TotalStaked), ActiveStakes: common.Copy(p.ActiveStakes)}
}

type SlashRecord struct {
	ID         string
	Timestamp  int64
	Amount     *big.Int
	Percentage uint64
	Reason     string
	Caller     common.Address
}

func (r *SlashRecord) Copy() *SlashRecord {
	cp := *r
	cp.Amount = common.Copy(r.Amount)
	return &cp
}

// SlashAccount is the append-only penalty history of one identity plus its cooldown anchor.
type SlashAccount struct {
	History   []*SlashRecord
	LastSlash int64
	Slashed   bool
	Lifetime  *big.Int
}

func NewSlashAccount() *SlashAccount {
	return &SlashAccount{Lifetime: new(big.Int)}
}

func (a *SlashAccount) Copy() *SlashAccount {
	cp := *a
	cp.Lifetime = common.Copy(a.Lifetime)
	cp.History = make([]*SlashRecord, len(a.History))
	for i, r := range a.History {
		cp.History[i] = r.Copy()
	}
	return &cp
}

type ReputationState struct {
	Base         *big.Int
	LastActivity int64
}

func (r *ReputationState) Copy() *ReputationState {
	return &ReputationState{Base: common.Copy(r.Base), LastActivity: r.LastActivity}
}

type Dispute struct {
	ClaimID    uint64
	Opener     common.Address
	Reason     string
	OpenedAt   int64
	Active     bool
	Resolver   common.Address
	ResolvedAt int64
}

func (d *Dispute) Copy() *Dispute {
	cp := *d
	return &cp
}

// Meta holds the protocol-wide scalars.
type Meta struct {
	LastClaimID uint64
	Paused      bool
}
