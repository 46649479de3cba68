package params

import (
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_Bounds(t *testing.T) {
	cases := map[string]func(p *Params){
		"max slash above 100":   func(p *Params) { p.MaxSlashPercentage = 101 },
		"cooldown above limit":  func(p *Params) { p.SlashCooldown = MaxSlashCooldown + 1 },
		"zero min score":        func(p *Params) { p.MinScore = big.NewInt(0) },
		"min equals max":        func(p *Params) { p.MinScore = common.Copy(p.MaxScore) },
		"zero default score":    func(p *Params) { p.DefaultScore = big.NewInt(0) },
		"silver above gold":     func(p *Params) { p.SilverThreshold = Scaled(3, 1) },
		"zero silver":           func(p *Params) { p.SilverThreshold = big.NewInt(0) },
		"zero epoch":            func(p *Params) { p.EpochDuration = 0 },
		"decay above basis":     func(p *Params) { p.MaxDecayPercent = Basis + 1 },
		"zero voting window":    func(p *Params) { p.VotingWindow = 0 },
		"zero threshold":        func(p *Params) { p.ThresholdPercent = 0 },
		"zero min stake":        func(p *Params) { p.MinStake = big.NewInt(0) },
		"excessive reward":      func(p *Params) { p.RewardPercent = 120 },
		"dispute window":        func(p *Params) { p.DisputeWindow = MaxDisputeWindow + 1 },
		"decreasing multiplier": func(p *Params) { p.GoldMultiplier = p.SilverMultiplier - 1 },
	}

	for name, mutate := range cases {
		p := Default()
		mutate(p)
		e := p.Validate()
		assert.True(t, errors.Is(e, InvalidParamsError), name)
		assert.Equal(t, common.Validation, common.KindOf(e), name)
	}
}

func TestCopy_IsDeep(t *testing.T) {
	p := Default()
	c := p.Copy()
	c.MinStake.SetInt64(999)
	c.MaxScore.SetInt64(1)

	assert.Equal(t, big.NewInt(10), p.MinStake)
	assert.Equal(t, Scaled(3, 1), p.MaxScore)
}

func TestFromSettings_Overlay(t *testing.T) {
	off := false
	p, e := FromSettings(common.ProtocolSettings{
		VotingWindow:     600,
		MinStake:         "50",
		WeightingEnabled: &off,
		MaxScore:         Scaled(2, 1).String(),
	})
	assert.NoError(t, e)
	assert.Equal(t, int64(600), p.VotingWindow)
	assert.Equal(t, big.NewInt(50), p.MinStake)
	assert.False(t, p.WeightingEnabled)
	assert.Equal(t, Scaled(2, 1), p.MaxScore)
	assert.Equal(t, uint64(60), p.ThresholdPercent)
}

func TestFromSettings_Rejects(t *testing.T) {
	_, e := FromSettings(common.ProtocolSettings{MinStake: "ten"})
	assert.True(t, errors.Is(e, InvalidParamsError))

	_, e = FromSettings(common.ProtocolSettings{MaxSlashPercentage: 200})
	assert.True(t, errors.Is(e, InvalidParamsError))
}
