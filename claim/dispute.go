package claim

import (
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

// OpenDispute holds settlement of a claim between the end of voting and the end of the dispute window.
func OpenDispute(r *state.Record, p *params.Params, claimID uint64, opener common.Address, reason string, now int64) (*state.Dispute, error) {
	c, found := r.Claim(claimID)
	if !found {
		return nil, errors.Wrapf(ClaimNotFoundError, "claim %d", claimID)
	}
	if c.Settled {
		return nil, AlreadySettledError
	}
	if now < c.WindowEnd {
		return nil, errors.Wrapf(WindowOpenError, "claim %d voting ends at %d", claimID, c.WindowEnd)
	}
	if now >= SettleAt(c, p) {
		return nil, DisputeWindowClosedError
	}
	if d, found := r.Dispute(claimID); found && d.Active {
		return nil, DisputeAlreadyActiveError
	}

	d := &state.Dispute{ClaimID: claimID, Opener: opener, Reason: reason, OpenedAt: now, Active: true}
	r.PutDispute(d)
	r.AddEvent(common.DisputeOpened, &DisputeChanged{ClaimID: claimID, Actor: opener, Reason: reason, Active: true})
	log.Infof("Dispute opened on claim %d by %v: %v", claimID, opener.Hex(), reason)

	return d.Copy(), nil
}

func ResolveDispute(r *state.Record, claimID uint64, resolver common.Address, now int64) (*state.Dispute, error) {
	d, found := r.DisputeForUpdate(claimID)
	if !found {
		return nil, DisputeNotFoundError
	}
	if !d.Active {
		return nil, NoActiveDisputeError
	}
	d.Active = false
	d.Resolver = resolver
	d.ResolvedAt = now

	r.AddEvent(common.DisputeResolved, &DisputeChanged{ClaimID: claimID, Actor: resolver, Reason: d.Reason})
	log.Infof("Dispute on claim %d resolved by %v", claimID, resolver.Hex())

	return d.Copy(), nil
}
