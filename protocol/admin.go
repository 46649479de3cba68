package protocol

import (
	"context"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/state"
)

type RoleChanged struct {
	Admin      common.Address
	Identity   common.Address
	Capability permission.Capability
	Held       permission.Capability
}

type ParamsChanged struct {
	Admin  common.Address
	Params *params.Params
}

type PauseToggled struct {
	Admin  common.Address
	Paused bool
}

func (e *Engine) Grant(ctx context.Context, admin common.Address, identity common.Address, c permission.Capability) error {
	return e.execute(ctx, "grant", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, admin, permission.Administer); err != nil {
			return err
		}
		if err := common.CheckIdentity(identity); err != nil {
			return err
		}
		if !c.Valid() {
			return permission.UnknownCapError
		}
		held := r.Role(identity).With(c)
		r.SetRole(identity, held)
		r.AddEvent(common.RoleGranted, &RoleChanged{Admin: admin, Identity: identity, Capability: c, Held: held})
		return nil
	})
}

// Revoke removes c from identity. Revoking that leaves no administrator fails.
func (e *Engine) Revoke(ctx context.Context, admin common.Address, identity common.Address, c permission.Capability) error {
	return e.execute(ctx, "revoke", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, admin, permission.Administer); err != nil {
			return err
		}
		if err := common.CheckIdentity(identity); err != nil {
			return err
		}
		if !c.Valid() {
			return permission.UnknownCapError
		}
		held := r.Role(identity).Without(c)
		r.SetRole(identity, held)
		if r.AdminCount() == 0 {
			return permission.LastAdminError
		}
		r.AddEvent(common.RoleRevoked, &RoleChanged{Admin: admin, Identity: identity, Capability: c, Held: held})
		return nil
	})
}

func (e *Engine) GrantSettle(ctx context.Context, admin, identity common.Address) error {
	return e.Grant(ctx, admin, identity, permission.Settle)
}

func (e *Engine) RevokeSettle(ctx context.Context, admin, identity common.Address) error {
	return e.Revoke(ctx, admin, identity, permission.Settle)
}

func (e *Engine) GrantAdmin(ctx context.Context, admin, identity common.Address) error {
	return e.Grant(ctx, admin, identity, permission.Administer)
}

func (e *Engine) RevokeAdmin(ctx context.Context, admin, identity common.Address) error {
	return e.Revoke(ctx, admin, identity, permission.Administer)
}

// UpdateParams applies update to a copy of the parameters and stores it if it still validates.
func (e *Engine) UpdateParams(ctx context.Context, admin common.Address, update func(p *params.Params)) error {
	return e.execute(ctx, "update_params", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, admin, permission.Administer); err != nil {
			return err
		}
		next := p.Copy()
		update(next)
		if err := next.Validate(); err != nil {
			return err
		}
		r.SetParams(next)
		r.AddEvent(common.ParamsUpdated, &ParamsChanged{Admin: admin, Params: next.Copy()})
		return nil
	})
}

func (e *Engine) SetMaxSlashPercentage(ctx context.Context, admin common.Address, pct uint64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.MaxSlashPercentage = pct
	})
}

func (e *Engine) SetSlashCooldown(ctx context.Context, admin common.Address, seconds int64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.SlashCooldown = seconds
	})
}

func (e *Engine) SetReputationBounds(ctx context.Context, admin common.Address, min, max *big.Int) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.MinScore, p.MaxScore = min, max
	})
}

func (e *Engine) SetDefaultScore(ctx context.Context, admin common.Address, score *big.Int) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.DefaultScore = score
	})
}

func (e *Engine) SetWeightingEnabled(ctx context.Context, admin common.Address, enabled bool) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.WeightingEnabled = enabled
	})
}

func (e *Engine) SetDecayParams(ctx context.Context, admin common.Address, rate uint64, epoch int64, threshold uint64, maxDecay uint64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.DecayRatePerEpoch = rate
		p.EpochDuration = epoch
		p.InactivityThreshold = threshold
		p.MaxDecayPercent = maxDecay
	})
}

func (e *Engine) SetTierThresholds(ctx context.Context, admin common.Address, silver, gold *big.Int) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.SilverThreshold, p.GoldThreshold = silver, gold
	})
}

func (e *Engine) SetSettlementParams(ctx context.Context, admin common.Address, threshold, slash, reward uint64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.ThresholdPercent = threshold
		p.SlashPercent = slash
		p.RewardPercent = reward
	})
}

func (e *Engine) SetVotingWindow(ctx context.Context, admin common.Address, seconds int64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.VotingWindow = seconds
	})
}

func (e *Engine) SetDisputeWindow(ctx context.Context, admin common.Address, seconds int64) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.DisputeWindow = seconds
	})
}

func (e *Engine) SetMinStake(ctx context.Context, admin common.Address, amount *big.Int) error {
	return e.UpdateParams(ctx, admin, func(p *params.Params) {
		p.MinStake = amount
	})
}

func (e *Engine) Pause(ctx context.Context, admin common.Address) error {
	return e.setPaused(ctx, admin, true)
}

func (e *Engine) Unpause(ctx context.Context, admin common.Address) error {
	return e.setPaused(ctx, admin, false)
}

func (e *Engine) setPaused(ctx context.Context, admin common.Address, paused bool) error {
	return e.execute(ctx, "set_paused", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := authorize(r, admin, permission.Administer); err != nil {
			return err
		}
		m := r.Meta()
		if m.Paused == paused {
			return nil
		}
		m.Paused = paused
		r.SetMeta(m)
		r.AddEvent(common.PauseChanged, &PauseToggled{Admin: admin, Paused: paused})
		log.Warningf("Protocol paused: %v", paused)
		return nil
	})
}
