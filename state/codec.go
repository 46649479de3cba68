package state

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	cmn "github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

var (
	MetaKey   = []byte("meta")
	ParamsKey = []byte("params")

	MalformedKeyError = errors.New("malformed storage key")
)

func ClaimKey(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func ClaimIDFromKey(key []byte) (uint64, error) {
	if len(key) != 8 {
		return 0, MalformedKeyError
	}
	return binary.BigEndian.Uint64(key), nil
}

func VoteStorageKey(k VoteKey) []byte {
	return append(ClaimKey(k.Claim), k.Voter.Bytes()...)
}

func VoteKeyFromStorage(key []byte) (VoteKey, error) {
	if len(key) != 8+common.AddressLength {
		return VoteKey{}, MalformedKeyError
	}
	return VoteKey{Claim: binary.BigEndian.Uint64(key[:8]), Voter: common.BytesToAddress(key[8:])}, nil
}

func AddressFromKey(key []byte) (cmn.Address, error) {
	if len(key) != common.AddressLength {
		return cmn.Address{}, MalformedKeyError
	}
	return common.BytesToAddress(key), nil
}

func intBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}

func bytesInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

func encode(m proto.Message) []byte {
	b, e := proto.Marshal(m)
	if e != nil {
		log.Error("can't marshal", e)
		return nil
	}
	return b
}

func (c *Claim) Serialize() []byte {
	return encode(&pbClaim{
		Id:              c.ID,
		Submitter:       c.Submitter.Bytes(),
		Content:         c.Content,
		CreatedAt:       c.CreatedAt,
		WindowEnd:       c.WindowEnd,
		Settled:         c.Settled,
		WeightedFor:     intBytes(c.WeightedFor),
		WeightedAgainst: intBytes(c.WeightedAgainst),
		TotalStake:      intBytes(c.TotalStake),
		RawFor:          intBytes(c.RawFor),
		RawAgainst:      intBytes(c.RawAgainst),
	})
}

func DeserializeClaim(b []byte) (*Claim, error) {
	m := &pbClaim{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal claim")
	}
	return &Claim{
		ID:              m.Id,
		Submitter:       common.BytesToAddress(m.Submitter),
		Content:         m.Content,
		CreatedAt:       m.CreatedAt,
		WindowEnd:       m.WindowEnd,
		Settled:         m.Settled,
		WeightedFor:     bytesInt(m.WeightedFor),
		WeightedAgainst: bytesInt(m.WeightedAgainst),
		TotalStake:      bytesInt(m.TotalStake),
		RawFor:          bytesInt(m.RawFor),
		RawAgainst:      bytesInt(m.RawAgainst),
	}, nil
}

func (v *Vote) Serialize() []byte {
	return encode(&pbVote{
		Voted:         v.Voted,
		Support:       v.Support,
		Stake:         intBytes(v.Stake),
		Effective:     intBytes(v.Effective),
		Score:         intBytes(v.Score),
		CastAt:        v.CastAt,
		RewardClaimed: v.RewardClaimed,
		StakeReturned: v.StakeReturned,
	})
}

func DeserializeVote(b []byte) (*Vote, error) {
	m := &pbVote{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal vote")
	}
	return &Vote{
		Voted:         m.Voted,
		Support:       m.Support,
		Stake:         bytesInt(m.Stake),
		Effective:     bytesInt(m.Effective),
		Score:         bytesInt(m.Score),
		CastAt:        m.CastAt,
		RewardClaimed: m.RewardClaimed,
		StakeReturned: m.StakeReturned,
	}, nil
}

func (s *SettlementResult) Serialize() []byte {
	return encode(&pbSettlement{
		ClaimId:        s.ClaimID,
		Passed:         s.Passed,
		TotalRewards:   intBytes(s.TotalRewards),
		TotalSlashed:   intBytes(s.TotalSlashed),
		Retained:       intBytes(s.Retained),
		WinnerWeighted: intBytes(s.WinnerWeighted),
		LoserWeighted:  intBytes(s.LoserWeighted),
		WinnerRaw:      intBytes(s.WinnerRaw),
		LoserRaw:       intBytes(s.LoserRaw),
		SettledAt:      s.SettledAt,
		SlashPercent:   s.SlashPercent,
	})
}

func DeserializeSettlement(b []byte) (*SettlementResult, error) {
	m := &pbSettlement{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal settlement")
	}
	return &SettlementResult{
		ClaimID:        m.ClaimId,
		Passed:         m.Passed,
		TotalRewards:   bytesInt(m.TotalRewards),
		TotalSlashed:   bytesInt(m.TotalSlashed),
		Retained:       bytesInt(m.Retained),
		WinnerWeighted: bytesInt(m.WinnerWeighted),
		LoserWeighted:  bytesInt(m.LoserWeighted),
		WinnerRaw:      bytesInt(m.WinnerRaw),
		LoserRaw:       bytesInt(m.LoserRaw),
		SettledAt:      m.SettledAt,
		SlashPercent:   m.SlashPercent,
	}, nil
}

func (p *StakePool) Serialize() []byte {
	return encode(&pbPool{TotalStaked: intBytes(p.TotalStaked), ActiveStakes: intBytes(p.ActiveStakes)})
}

func DeserializePool(b []byte) (*StakePool, error) {
	m := &pbPool{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal pool")
	}
	return &StakePool{TotalStaked: bytesInt(m.TotalStaked), ActiveStakes: bytesInt(m.ActiveStakes)}, nil
}

func (a *SlashAccount) Serialize() []byte {
	m := &pbSlashAccount{LastSlash: a.LastSlash, Slashed: a.Slashed, Lifetime: intBytes(a.Lifetime)}
	for _, r := range a.History {
		m.History = append(m.History, &pbSlashRecord{
			Id:         r.ID,
			Timestamp:  r.Timestamp,
			Amount:     intBytes(r.Amount),
			Percentage: r.Percentage,
			Reason:     r.Reason,
			Caller:     r.Caller.Bytes(),
		})
	}
	return encode(m)
}

func DeserializeSlashAccount(b []byte) (*SlashAccount, error) {
	m := &pbSlashAccount{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal slash account")
	}
	a := &SlashAccount{LastSlash: m.LastSlash, Slashed: m.Slashed, Lifetime: bytesInt(m.Lifetime)}
	for _, r := range m.History {
		a.History = append(a.History, &SlashRecord{
			ID:         r.Id,
			Timestamp:  r.Timestamp,
			Amount:     bytesInt(r.Amount),
			Percentage: r.Percentage,
			Reason:     r.Reason,
			Caller:     common.BytesToAddress(r.Caller),
		})
	}
	return a, nil
}

func (r *ReputationState) Serialize() []byte {
	return encode(&pbReputation{Base: intBytes(r.Base), LastActivity: r.LastActivity})
}

func DeserializeReputation(b []byte) (*ReputationState, error) {
	m := &pbReputation{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal reputation")
	}
	return &ReputationState{Base: bytesInt(m.Base), LastActivity: m.LastActivity}, nil
}

func (d *Dispute) Serialize() []byte {
	return encode(&pbDispute{
		ClaimId:    d.ClaimID,
		Opener:     d.Opener.Bytes(),
		Reason:     d.Reason,
		OpenedAt:   d.OpenedAt,
		Active:     d.Active,
		Resolver:   d.Resolver.Bytes(),
		ResolvedAt: d.ResolvedAt,
	})
}

func DeserializeDispute(b []byte) (*Dispute, error) {
	m := &pbDispute{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal dispute")
	}
	return &Dispute{
		ClaimID:    m.ClaimId,
		Opener:     common.BytesToAddress(m.Opener),
		Reason:     m.Reason,
		OpenedAt:   m.OpenedAt,
		Active:     m.Active,
		Resolver:   common.BytesToAddress(m.Resolver),
		ResolvedAt: m.ResolvedAt,
	}, nil
}

func (m Meta) Serialize() []byte {
	return encode(&pbMeta{LastClaimId: m.LastClaimID, Paused: m.Paused})
}

func DeserializeMeta(b []byte) (Meta, error) {
	m := &pbMeta{}
	if err := proto.Unmarshal(b, m); err != nil {
		return Meta{}, errors.Wrap(err, "can't unmarshal meta")
	}
	return Meta{LastClaimID: m.LastClaimId, Paused: m.Paused}, nil
}

func serializeRole(c uint8) []byte {
	return encode(&pbRole{Capabilities: uint32(c)})
}

func deserializeRole(b []byte) (uint8, error) {
	m := &pbRole{}
	if err := proto.Unmarshal(b, m); err != nil {
		return 0, errors.Wrap(err, "can't unmarshal role")
	}
	return uint8(m.Capabilities), nil
}

func SerializeParams(p *params.Params) []byte {
	return encode(&pbParams{
		VotingWindow:        p.VotingWindow,
		DisputeWindow:       p.DisputeWindow,
		MinStake:            intBytes(p.MinStake),
		ThresholdPercent:    p.ThresholdPercent,
		SlashPercent:        p.SlashPercent,
		RewardPercent:       p.RewardPercent,
		WeightingEnabled:    p.WeightingEnabled,
		MinScore:            intBytes(p.MinScore),
		MaxScore:            intBytes(p.MaxScore),
		DefaultScore:        intBytes(p.DefaultScore),
		MaxSlashPercentage:  p.MaxSlashPercentage,
		SlashCooldown:       p.SlashCooldown,
		DecayRatePerEpoch:   p.DecayRatePerEpoch,
		EpochDuration:       p.EpochDuration,
		InactivityThreshold: p.InactivityThreshold,
		MaxDecayPercent:     p.MaxDecayPercent,
		SilverThreshold:     intBytes(p.SilverThreshold),
		GoldThreshold:       intBytes(p.GoldThreshold),
		BronzeMultiplier:    p.BronzeMultiplier,
		SilverMultiplier:    p.SilverMultiplier,
		GoldMultiplier:      p.GoldMultiplier,
	})
}

func DeserializeParams(b []byte) (*params.Params, error) {
	m := &pbParams{}
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal params")
	}
	return &params.Params{
		VotingWindow:        m.VotingWindow,
		DisputeWindow:       m.DisputeWindow,
		MinStake:            bytesInt(m.MinStake),
		ThresholdPercent:    m.ThresholdPercent,
		SlashPercent:        m.SlashPercent,
		RewardPercent:       m.RewardPercent,
		WeightingEnabled:    m.WeightingEnabled,
		MinScore:            bytesInt(m.MinScore),
		MaxScore:            bytesInt(m.MaxScore),
		DefaultScore:        bytesInt(m.DefaultScore),
		MaxSlashPercentage:  m.MaxSlashPercentage,
		SlashCooldown:       m.SlashCooldown,
		DecayRatePerEpoch:   m.DecayRatePerEpoch,
		EpochDuration:       m.EpochDuration,
		InactivityThreshold: m.InactivityThreshold,
		MaxDecayPercent:     m.MaxDecayPercent,
		SilverThreshold:     bytesInt(m.SilverThreshold),
		GoldThreshold:       bytesInt(m.GoldThreshold),
		BronzeMultiplier:    m.BronzeMultiplier,
		SilverMultiplier:    m.SilverMultiplier,
		GoldMultiplier:      m.GoldMultiplier,
	}, nil
}
