package protocol

import (
	"context"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/slashing"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
)

func (e *Engine) slashable(r *state.Record, caller common.Address) error {
	if r.Meta().Paused {
		return PausedError
	}
	return authorize(r, caller, permission.Settle)
}

func (e *Engine) Slash(ctx context.Context, caller common.Address, identity common.Address, percentage uint64, reason string) (rec *state.SlashRecord, err error) {
	err = e.execute(ctx, "slash", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := e.slashable(r, caller); err != nil {
			return err
		}
		c := slashing.NewController(stake.NewStore(r))
		rec, err = c.Slash(r, p, caller, slashing.Request{Identity: identity, Percentage: percentage, Reason: reason}, now)
		return err
	})
	if err == nil {
		metrics.RecordValue("slashed", rec.Amount)
	}
	return rec, err
}

// BatchSlash slashes every listed identity or, on the first failing entry, none of them.
func (e *Engine) BatchSlash(ctx context.Context, caller common.Address, identities []common.Address, percentages []uint64, reasons []string) (recs []*state.SlashRecord, err error) {
	err = e.execute(ctx, "batch_slash", func(ctx context.Context, r *state.Record, p *params.Params, now int64) error {
		if err := e.slashable(r, caller); err != nil {
			return err
		}
		reqs, err := slashing.NewRequests(identities, percentages, reasons)
		if err != nil {
			return err
		}
		c := slashing.NewController(stake.NewStore(r))
		recs, err = c.BatchSlash(r, p, caller, reqs, now)
		return err
	})
	if err == nil {
		for _, rec := range recs {
			metrics.RecordValue("slashed", rec.Amount)
		}
	}
	return recs, err
}
