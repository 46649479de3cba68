package rpc

import (
	"math/big"

	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
)

// Amounts are rendered as decimal strings, JSON numbers can't hold them.
func amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

type ClaimView struct {
	ID              uint64 `json:"id"`
	Submitter       string `json:"submitter"`
	Content         string `json:"content"`
	CreatedAt       int64  `json:"createdAt"`
	WindowEnd       int64  `json:"windowEnd"`
	Settled         bool   `json:"settled"`
	WeightedFor     string `json:"weightedFor"`
	WeightedAgainst string `json:"weightedAgainst"`
	TotalStake      string `json:"totalStake"`
}

func toClaimView(c *state.Claim) *ClaimView {
	return &ClaimView{
		ID:              c.ID,
		Submitter:       c.Submitter.Hex(),
		Content:         c.Content,
		CreatedAt:       c.CreatedAt,
		WindowEnd:       c.WindowEnd,
		Settled:         c.Settled,
		WeightedFor:     amount(c.WeightedFor),
		WeightedAgainst: amount(c.WeightedAgainst),
		TotalStake:      amount(c.TotalStake),
	}
}

type VoteView struct {
	Support       bool   `json:"support"`
	Stake         string `json:"stake"`
	Effective     string `json:"effective"`
	Score         string `json:"score"`
	CastAt        int64  `json:"castAt"`
	RewardClaimed bool   `json:"rewardClaimed"`
	StakeReturned bool   `json:"stakeReturned"`
}

func toVoteView(v *state.Vote) *VoteView {
	return &VoteView{
		Support:       v.Support,
		Stake:         amount(v.Stake),
		Effective:     amount(v.Effective),
		Score:         amount(v.Score),
		CastAt:        v.CastAt,
		RewardClaimed: v.RewardClaimed,
		StakeReturned: v.StakeReturned,
	}
}

type SettlementView struct {
	ClaimID        uint64 `json:"claimId"`
	Passed         bool   `json:"passed"`
	TotalRewards   string `json:"totalRewards"`
	TotalSlashed   string `json:"totalSlashed"`
	Retained       string `json:"retained"`
	WinnerWeighted string `json:"winnerWeighted"`
	LoserWeighted  string `json:"loserWeighted"`
	SettledAt      int64  `json:"settledAt"`
	SlashPercent   uint64 `json:"slashPercent"`
}

func toSettlementView(s *state.SettlementResult) *SettlementView {
	return &SettlementView{
		ClaimID:        s.ClaimID,
		Passed:         s.Passed,
		TotalRewards:   amount(s.TotalRewards),
		TotalSlashed:   amount(s.TotalSlashed),
		Retained:       amount(s.Retained),
		WinnerWeighted: amount(s.WinnerWeighted),
		LoserWeighted:  amount(s.LoserWeighted),
		SettledAt:      s.SettledAt,
		SlashPercent:   s.SlashPercent,
	}
}

type StakeView struct {
	Identity     string `json:"identity"`
	TotalStaked  string `json:"totalStaked"`
	ActiveStakes string `json:"activeStakes"`
	Available    string `json:"available"`
}

type SlashView struct {
	ID         string `json:"id"`
	Timestamp  int64  `json:"timestamp"`
	Amount     string `json:"amount"`
	Percentage uint64 `json:"percentage"`
	Reason     string `json:"reason"`
	Caller     string `json:"caller"`
}

type SlashesView struct {
	Identity string       `json:"identity"`
	Lifetime string       `json:"lifetime"`
	History  []*SlashView `json:"history"`
}

func toSlashesView(identity string, lifetime *big.Int, history []*state.SlashRecord) *SlashesView {
	v := &SlashesView{Identity: identity, Lifetime: amount(lifetime), History: []*SlashView{}}
	for _, r := range history {
		v.History = append(v.History, &SlashView{
			ID:         r.ID,
			Timestamp:  r.Timestamp,
			Amount:     amount(r.Amount),
			Percentage: r.Percentage,
			Reason:     r.Reason,
			Caller:     r.Caller.Hex(),
		})
	}
	return v
}

type ReputationView struct {
	Identity   string `json:"identity"`
	Effective  string `json:"effective"`
	Tier       string `json:"tier"`
	Multiplier uint64 `json:"multiplier"`
}

type ParamsView struct {
	VotingWindow        int64  `json:"votingWindow"`
	DisputeWindow       int64  `json:"disputeWindow"`
	MinStake            string `json:"minStake"`
	ThresholdPercent    uint64 `json:"thresholdPercent"`
	SlashPercent        uint64 `json:"slashPercent"`
	RewardPercent       uint64 `json:"rewardPercent"`
	WeightingEnabled    bool   `json:"weightingEnabled"`
	MinScore            string `json:"minScore"`
	MaxScore            string `json:"maxScore"`
	DefaultScore        string `json:"defaultScore"`
	MaxSlashPercentage  uint64 `json:"maxSlashPercentage"`
	SlashCooldown       int64  `json:"slashCooldown"`
	DecayRatePerEpoch   uint64 `json:"decayRatePerEpoch"`
	EpochDuration       int64  `json:"epochDuration"`
	InactivityThreshold uint64 `json:"inactivityThreshold"`
	MaxDecayPercent     uint64 `json:"maxDecayPercent"`
	SilverThreshold     string `json:"silverThreshold"`
	GoldThreshold       string `json:"goldThreshold"`
	Paused              bool   `json:"paused"`
}

func toParamsView(p *params.Params, paused bool) *ParamsView {
	return &ParamsView{
		VotingWindow:        p.VotingWindow,
		DisputeWindow:       p.DisputeWindow,
		MinStake:            amount(p.MinStake),
		ThresholdPercent:    p.ThresholdPercent,
		SlashPercent:        p.SlashPercent,
		RewardPercent:       p.RewardPercent,
		WeightingEnabled:    p.WeightingEnabled,
		MinScore:            amount(p.MinScore),
		MaxScore:            amount(p.MaxScore),
		DefaultScore:        amount(p.DefaultScore),
		MaxSlashPercentage:  p.MaxSlashPercentage,
		SlashCooldown:       p.SlashCooldown,
		DecayRatePerEpoch:   p.DecayRatePerEpoch,
		EpochDuration:       p.EpochDuration,
		InactivityThreshold: p.InactivityThreshold,
		MaxDecayPercent:     p.MaxDecayPercent,
		SilverThreshold:     amount(p.SilverThreshold),
		GoldThreshold:       amount(p.GoldThreshold),
		Paused:              paused,
	}
}
