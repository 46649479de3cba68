package state

import (
	"github.com/gogo/protobuf/proto"
)

// Storage messages. They are declared by hand with protobuf struct tags and encoded by the
// reflection based gogo marshaller.

type pbClaim struct {
	Id              uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Submitter       []byte `protobuf:"bytes,2,opt,name=submitter,proto3" json:"submitter,omitempty"`
	Content         string `protobuf:"bytes,3,opt,name=content,proto3" json:"content,omitempty"`
	CreatedAt       int64  `protobuf:"varint,4,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
	WindowEnd       int64  `protobuf:"varint,5,opt,name=window_end,json=windowEnd,proto3" json:"window_end,omitempty"`
	Settled         bool   `protobuf:"varint,6,opt,name=settled,proto3" json:"settled,omitempty"`
	WeightedFor     []byte `protobuf:"bytes,7,opt,name=weighted_for,json=weightedFor,proto3" json:"weighted_for,omitempty"`
	WeightedAgainst []byte `protobuf:"bytes,8,opt,name=weighted_against,json=weightedAgainst,proto3" json:"weighted_against,omitempty"`
	TotalStake      []byte `protobuf:"bytes,9,opt,name=total_stake,json=totalStake,proto3" json:"total_stake,omitempty"`
	RawFor          []byte `protobuf:"bytes,10,opt,name=raw_for,json=rawFor,proto3" json:"raw_for,omitempty"`
	RawAgainst      []byte `protobuf:"bytes,11,opt,name=raw_against,json=rawAgainst,proto3" json:"raw_against,omitempty"`
}

func (m *pbClaim) Reset()         { *m = pbClaim{} }
func (m *pbClaim) String() string { return proto.CompactTextString(m) }
func (*pbClaim) ProtoMessage()    {}

type pbVote struct {
	Voted         bool   `protobuf:"varint,1,opt,name=voted,proto3" json:"voted,omitempty"`
	Support       bool   `protobuf:"varint,2,opt,name=support,proto3" json:"support,omitempty"`
	Stake         []byte `protobuf:"bytes,3,opt,name=stake,proto3" json:"stake,omitempty"`
	Effective     []byte `protobuf:"bytes,4,opt,name=effective,proto3" json:"effective,omitempty"`
	Score         []byte `protobuf:"bytes,5,opt,name=score,proto3" json:"score,omitempty"`
	CastAt        int64  `protobuf:"varint,6,opt,name=cast_at,json=castAt,proto3" json:"cast_at,omitempty"`
	RewardClaimed bool   `protobuf:"varint,7,opt,name=reward_claimed,json=rewardClaimed,proto3" json:"reward_claimed,omitempty"`
	StakeReturned bool   `protobuf:"varint,8,opt,name=stake_returned,json=stakeReturned,proto3" json:"stake_returned,omitempty"`
}

func (m *pbVote) Reset()         { *m = pbVote{} }
func (m *pbVote) String() string { return proto.CompactTextString(m) }
func (*pbVote) ProtoMessage()    {}

type pbSettlement struct {
	ClaimId        uint64 `protobuf:"varint,1,opt,name=claim_id,json=claimId,proto3" json:"claim_id,omitempty"`
	Passed         bool   `protobuf:"varint,2,opt,name=passed,proto3" json:"passed,omitempty"`
	TotalRewards   []byte `protobuf:"bytes,3,opt,name=total_rewards,json=totalRewards,proto3" json:"total_rewards,omitempty"`
	TotalSlashed   []byte `protobuf:"bytes,4,opt,name=total_slashed,json=totalSlashed,proto3" json:"total_slashed,omitempty"`
	Retained       []byte `protobuf:"bytes,5,opt,name=retained,proto3" json:"retained,omitempty"`
	WinnerWeighted []byte `protobuf:"bytes,6,opt,name=winner_weighted,json=winnerWeighted,proto3" json:"winner_weighted,omitempty"`
	LoserWeighted  []byte `protobuf:"bytes,7,opt,name=loser_weighted,json=loserWeighted,proto3" json:"loser_weighted,omitempty"`
	WinnerRaw      []byte `protobuf:"bytes,8,opt,name=winner_raw,json=winnerRaw,proto3" json:"winner_raw,omitempty"`
	LoserRaw       []byte `protobuf:"bytes,9,opt,name=loser_raw,json=loserRaw,proto3" json:"loser_raw,omitempty"`
	SettledAt      int64  `protobuf:"varint,10,opt,name=settled_at,json=settledAt,proto3" json:"settled_at,omitempty"`
	SlashPercent   uint64 `protobuf:"varint,11,opt,name=slash_percent,json=slashPercent,proto3" json:"slash_percent,omitempty"`
}

func (m *pbSettlement) Reset()         { *m = pbSettlement{} }
func (m *pbSettlement) String() string { return proto.CompactTextString(m) }
func (*pbSettlement) ProtoMessage()    {}

type pbPool struct {
	TotalStaked  []byte `protobuf:"bytes,1,opt,name=total_staked,json=totalStaked,proto3" json:"total_staked,omitempty"`
	ActiveStakes []byte `protobuf:"bytes,2,opt,name=active_stakes,json=activeStakes,proto3" json:"active_stakes,omitempty"`
}

func (m *pbPool) Reset()         { *m = pbPool{} }
func (m *pbPool) String() string { return proto.CompactTextString(m) }
func (*pbPool) ProtoMessage()    {}

type pbSlashRecord struct {
	Id         string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Timestamp  int64  `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Amount     []byte `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Percentage uint64 `protobuf:"varint,4,opt,name=percentage,proto3" json:"percentage,omitempty"`
	Reason     string `protobuf:"bytes,5,opt,name=reason,proto3" json:"reason,omitempty"`
	Caller     []byte `protobuf:"bytes,6,opt,name=caller,proto3" json:"caller,omitempty"`
}

func (m *pbSlashRecord) Reset()         { *m = pbSlashRecord{} }
func (m *pbSlashRecord) String() string { return proto.CompactTextString(m) }
func (*pbSlashRecord) ProtoMessage()    {}

type pbSlashAccount struct {
	History   []*pbSlashRecord `protobuf:"bytes,1,rep,name=history,proto3" json:"history,omitempty"`
	LastSlash int64            `protobuf:"varint,2,opt,name=last_slash,json=lastSlash,proto3" json:"last_slash,omitempty"`
	Slashed   bool             `protobuf:"varint,3,opt,name=slashed,proto3" json:"slashed,omitempty"`
	Lifetime  []byte           `protobuf:"bytes,4,opt,name=lifetime,proto3" json:"lifetime,omitempty"`
}

func (m *pbSlashAccount) Reset()         { *m = pbSlashAccount{} }
func (m *pbSlashAccount) String() string { return proto.CompactTextString(m) }
func (*pbSlashAccount) ProtoMessage()    {}

type pbReputation struct {
	Base         []byte `protobuf:"bytes,1,opt,name=base,proto3" json:"base,omitempty"`
	LastActivity int64  `protobuf:"varint,2,opt,name=last_activity,json=lastActivity,proto3" json:"last_activity,omitempty"`
}

func (m *pbReputation) Reset()         { *m = pbReputation{} }
func (m *pbReputation) String() string { return proto.CompactTextString(m) }
func (*pbReputation) ProtoMessage()    {}

type pbDispute struct {
	ClaimId    uint64 `protobuf:"varint,1,opt,name=claim_id,json=claimId,proto3" json:"claim_id,omitempty"`
	Opener     []byte `protobuf:"bytes,2,opt,name=opener,proto3" json:"opener,omitempty"`
	Reason     string `protobuf:"bytes,3,opt,name=reason,proto3" json:"reason,omitempty"`
	OpenedAt   int64  `protobuf:"varint,4,opt,name=opened_at,json=openedAt,proto3" json:"opened_at,omitempty"`
	Active     bool   `protobuf:"varint,5,opt,name=active,proto3" json:"active,omitempty"`
	Resolver   []byte `protobuf:"bytes,6,opt,name=resolver,proto3" json:"resolver,omitempty"`
	ResolvedAt int64  `protobuf:"varint,7,opt,name=resolved_at,json=resolvedAt,proto3" json:"resolved_at,omitempty"`
}

func (m *pbDispute) Reset()         { *m = pbDispute{} }
func (m *pbDispute) String() string { return proto.CompactTextString(m) }
func (*pbDispute) ProtoMessage()    {}

type pbRole struct {
	Capabilities uint32 `protobuf:"varint,1,opt,name=capabilities,proto3" json:"capabilities,omitempty"`
}

func (m *pbRole) Reset()         { *m = pbRole{} }
func (m *pbRole) String() string { return proto.CompactTextString(m) }
func (*pbRole) ProtoMessage()    {}

type pbMeta struct {
	LastClaimId uint64 `protobuf:"varint,1,opt,name=last_claim_id,json=lastClaimId,proto3" json:"last_claim_id,omitempty"`
	Paused      bool   `protobuf:"varint,2,opt,name=paused,proto3" json:"paused,omitempty"`
}

func (m *pbMeta) Reset()         { *m = pbMeta{} }
func (m *pbMeta) String() string { return proto.CompactTextString(m) }
func (*pbMeta) ProtoMessage()    {}

type pbParams struct {
	VotingWindow        int64  `protobuf:"varint,1,opt,name=voting_window,json=votingWindow,proto3" json:"voting_window,omitempty"`
	DisputeWindow       int64  `protobuf:"varint,2,opt,name=dispute_window,json=disputeWindow,proto3" json:"dispute_window,omitempty"`
	MinStake            []byte `protobuf:"bytes,3,opt,name=min_stake,json=minStake,proto3" json:"min_stake,omitempty"`
	ThresholdPercent    uint64 `protobuf:"varint,4,opt,name=threshold_percent,json=thresholdPercent,proto3" json:"threshold_percent,omitempty"`
	SlashPercent        uint64 `protobuf:"varint,5,opt,name=slash_percent,json=slashPercent,proto3" json:"slash_percent,omitempty"`
	RewardPercent       uint64 `protobuf:"varint,6,opt,name=reward_percent,json=rewardPercent,proto3" json:"reward_percent,omitempty"`
	WeightingEnabled    bool   `protobuf:"varint,7,opt,name=weighting_enabled,json=weightingEnabled,proto3" json:"weighting_enabled,omitempty"`
	MinScore            []byte `protobuf:"bytes,8,opt,name=min_score,json=minScore,proto3" json:"min_score,omitempty"`
	MaxScore            []byte `protobuf:"bytes,9,opt,name=max_score,json=maxScore,proto3" json:"max_score,omitempty"`
	DefaultScore        []byte `protobuf:"bytes,10,opt,name=default_score,json=defaultScore,proto3" json:"default_score,omitempty"`
	MaxSlashPercentage  uint64 `protobuf:"varint,11,opt,name=max_slash_percentage,json=maxSlashPercentage,proto3" json:"max_slash_percentage,omitempty"`
	SlashCooldown       int64  `protobuf:"varint,12,opt,name=slash_cooldown,json=slashCooldown,proto3" json:"slash_cooldown,omitempty"`
	DecayRatePerEpoch   uint64 `protobuf:"varint,13,opt,name=decay_rate_per_epoch,json=decayRatePerEpoch,proto3" json:"decay_rate_per_epoch,omitempty"`
	EpochDuration       int64  `protobuf:"varint,14,opt,name=epoch_duration,json=epochDuration,proto3" json:"epoch_duration,omitempty"`
	InactivityThreshold uint64 `protobuf:"varint,15,opt,name=inactivity_threshold,json=inactivityThreshold,proto3" json:"inactivity_threshold,omitempty"`
	MaxDecayPercent     uint64 `protobuf:"varint,16,opt,name=max_decay_percent,json=maxDecayPercent,proto3" json:"max_decay_percent,omitempty"`
	SilverThreshold     []byte `protobuf:"bytes,17,opt,name=silver_threshold,json=silverThreshold,proto3" json:"silver_threshold,omitempty"`
	GoldThreshold       []byte `protobuf:"bytes,18,opt,name=gold_threshold,json=goldThreshold,proto3" json:"gold_threshold,omitempty"`
	BronzeMultiplier    uint64 `protobuf:"varint,19,opt,name=bronze_multiplier,json=bronzeMultiplier,proto3" json:"bronze_multiplier,omitempty"`
	SilverMultiplier    uint64 `protobuf:"varint,20,opt,name=silver_multiplier,json=silverMultiplier,proto3" json:"silver_multiplier,omitempty"`
	GoldMultiplier      uint64 `protobuf:"varint,21,opt,name=gold_multiplier,json=goldMultiplier,proto3" json:"gold_multiplier,omitempty"`
}

func (m *pbParams) Reset()         { *m = pbParams{} }
func (m *pbParams) String() string { return proto.CompactTextString(m) }
func (*pbParams) ProtoMessage()    {}
