package params

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/pkg/errors"
)

// FromSettings overlays the non-zero fields of s onto the defaults and validates the result.
func FromSettings(s common.ProtocolSettings) (*Params, error) {
	p := Default()

	if s.VotingWindow != 0 {
		p.VotingWindow = s.VotingWindow
	}
	if s.DisputeWindow != 0 {
		p.DisputeWindow = s.DisputeWindow
	}
	if s.ThresholdPercent != 0 {
		p.ThresholdPercent = s.ThresholdPercent
	}
	if s.SlashPercent != 0 {
		p.SlashPercent = s.SlashPercent
	}
	if s.RewardPercent != 0 {
		p.RewardPercent = s.RewardPercent
	}
	if s.WeightingEnabled != nil {
		p.WeightingEnabled = *s.WeightingEnabled
	}
	if s.MaxSlashPercentage != 0 {
		p.MaxSlashPercentage = s.MaxSlashPercentage
	}
	if s.SlashCooldown != 0 {
		p.SlashCooldown = s.SlashCooldown
	}
	if s.DecayRatePerEpoch != 0 {
		p.DecayRatePerEpoch = s.DecayRatePerEpoch
	}
	if s.EpochDuration != 0 {
		p.EpochDuration = s.EpochDuration
	}
	if s.InactivityThreshold != 0 {
		p.InactivityThreshold = s.InactivityThreshold
	}
	if s.MaxDecayPercent != 0 {
		p.MaxDecayPercent = s.MaxDecayPercent
	}

	amounts := []struct {
		raw string
		dst **big.Int
	}{
		{s.MinStake, &p.MinStake},
		{s.MinScore, &p.MinScore},
		{s.MaxScore, &p.MaxScore},
		{s.DefaultScore, &p.DefaultScore},
		{s.SilverThreshold, &p.SilverThreshold},
		{s.GoldThreshold, &p.GoldThreshold},
	}
	for _, a := range amounts {
		if a.raw == "" {
			continue
		}
		v, ok := new(big.Int).SetString(a.raw, 10)
		if !ok {
			return nil, errors.Wrapf(InvalidParamsError, "can't parse amount %q", a.raw)
		}
		*a.dst = v
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
