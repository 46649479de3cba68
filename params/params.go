// Package params holds the admin-controlled protocol configuration. A Params value is passed
// explicitly into every component; nothing reads ambient globals.
package params

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/pkg/errors"
)

const (
	// Basis is the denominator of decay rates, decay caps and tier multipliers.
	Basis = uint64(10000)
	// MaxBatchSize bounds batch slashing.
	MaxBatchSize = 50

	MaxSlashCooldown       = int64(30 * 24 * 3600)
	MaxVotingWindow        = int64(365 * 24 * 3600)
	MaxDisputeWindow       = int64(7 * 24 * 3600)
	MaxEpochDuration       = int64(365 * 24 * 3600)
	MaxInactivityThreshold = uint64(10000)
)

// Scale is the fixed point unit of reputation scores, 1.0 == 1e18.
var Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Scaled returns num/den expressed in Scale units.
func Scaled(num, den int64) *big.Int {
	return common.MulDiv(Scale, big.NewInt(num), big.NewInt(den))
}

var InvalidParamsError = common.NewError(common.Validation, "invalid protocol parameters")

type Params struct {
	// Claims and settlement
	VotingWindow     int64
	DisputeWindow    int64
	MinStake         *big.Int
	ThresholdPercent uint64
	SlashPercent     uint64
	RewardPercent    uint64

	// Reputation weighting
	WeightingEnabled bool
	MinScore         *big.Int
	MaxScore         *big.Int
	DefaultScore     *big.Int

	// Slashing
	MaxSlashPercentage uint64
	SlashCooldown      int64

	// Decay and tiers
	DecayRatePerEpoch   uint64
	EpochDuration       int64
	InactivityThreshold uint64
	MaxDecayPercent     uint64
	SilverThreshold     *big.Int
	GoldThreshold       *big.Int
	BronzeMultiplier    uint64
	SilverMultiplier    uint64
	GoldMultiplier      uint64
}

func Default() *Params {
	return &Params{
		VotingWindow:     3 * 24 * 3600,
		DisputeWindow:    0,
		MinStake:         big.NewInt(10),
		ThresholdPercent: 60,
		SlashPercent:     20,
		RewardPercent:    80,

		WeightingEnabled: true,
		MinScore:         Scaled(1, 2),
		MaxScore:         Scaled(3, 1),
		DefaultScore:     Scaled(1, 1),

		MaxSlashPercentage: 50,
		SlashCooldown:      24 * 3600,

		DecayRatePerEpoch:   500,
		EpochDuration:       7 * 24 * 3600,
		InactivityThreshold: 4,
		MaxDecayPercent:     5000,
		SilverThreshold:     Scaled(3, 2),
		GoldThreshold:       Scaled(5, 2),
		BronzeMultiplier:    10000,
		SilverMultiplier:    12500,
		GoldMultiplier:      15000,
	}
}

func (p *Params) Copy() *Params {
	c := *p
	c.MinStake = common.Copy(p.MinStake)
	c.MinScore = common.Copy(p.MinScore)
	c.MaxScore = common.Copy(p.MaxScore)
	c.DefaultScore = common.Copy(p.DefaultScore)
	c.SilverThreshold = common.Copy(p.SilverThreshold)
	c.GoldThreshold = common.Copy(p.GoldThreshold)
	return &c
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(InvalidParamsError, format, args...)
}

// Validate checks every bound of the configuration surface.
func (p *Params) Validate() error {
	if p.VotingWindow <= 0 || p.VotingWindow > MaxVotingWindow {
		return invalid("voting window %d out of (0, %d]", p.VotingWindow, MaxVotingWindow)
	}
	if p.DisputeWindow < 0 || p.DisputeWindow > MaxDisputeWindow {
		return invalid("dispute window %d out of [0, %d]", p.DisputeWindow, MaxDisputeWindow)
	}
	if !common.IsPositive(p.MinStake) {
		return invalid("min stake must be positive")
	}
	if p.ThresholdPercent == 0 || p.ThresholdPercent > 100 {
		return invalid("threshold %d out of (0, 100]", p.ThresholdPercent)
	}
	if p.SlashPercent > 100 {
		return invalid("slash percent %d above 100", p.SlashPercent)
	}
	if p.RewardPercent > 100 {
		return invalid("reward percent %d above 100", p.RewardPercent)
	}
	if err := p.validateScores(); err != nil {
		return err
	}
	if p.MaxSlashPercentage > 100 {
		return invalid("max slash percentage %d above 100", p.MaxSlashPercentage)
	}
	if p.SlashCooldown < 0 || p.SlashCooldown > MaxSlashCooldown {
		return invalid("slash cooldown %d out of [0, %d]", p.SlashCooldown, MaxSlashCooldown)
	}
	return p.validateDecay()
}

func (p *Params) validateScores() error {
	if !common.IsPositive(p.MinScore) {
		return invalid("min score must be positive")
	}
	if p.MaxScore == nil || p.MinScore.Cmp(p.MaxScore) >= 0 {
		return invalid("min score must be below max score")
	}
	if !common.IsPositive(p.DefaultScore) {
		return invalid("default score must be positive")
	}
	return nil
}

func (p *Params) validateDecay() error {
	if p.DecayRatePerEpoch > Basis {
		return invalid("decay rate %d above %d", p.DecayRatePerEpoch, Basis)
	}
	if p.EpochDuration <= 0 || p.EpochDuration > MaxEpochDuration {
		return invalid("epoch duration %d out of (0, %d]", p.EpochDuration, MaxEpochDuration)
	}
	if p.InactivityThreshold > MaxInactivityThreshold {
		return invalid("inactivity threshold %d above %d", p.InactivityThreshold, MaxInactivityThreshold)
	}
	if p.MaxDecayPercent > Basis {
		return invalid("max decay %d above %d", p.MaxDecayPercent, Basis)
	}
	if !common.IsPositive(p.SilverThreshold) {
		return invalid("silver threshold must be positive")
	}
	if p.GoldThreshold == nil || p.SilverThreshold.Cmp(p.GoldThreshold) >= 0 {
		return invalid("silver threshold must be below gold threshold")
	}
	if p.BronzeMultiplier == 0 || p.BronzeMultiplier > p.SilverMultiplier || p.SilverMultiplier > p.GoldMultiplier {
		return invalid("tier multipliers must be positive and non-decreasing")
	}
	return nil
}
