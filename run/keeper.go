package run

import (
	"context"
	"time"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
)

// Settler is the part of the engine the keeper drives.
type Settler interface {
	DueClaims() []uint64
	SettleClaim(ctx context.Context, claimID uint64) (*state.SettlementResult, error)
}

// Keeper settles claims as soon as their voting and dispute windows are over.
type Keeper struct {
	settler  Settler
	interval time.Duration
}

func NewKeeper(settler Settler, interval time.Duration) *Keeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Keeper{settler: settler, interval: interval}
}

func (k *Keeper) Run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			k.Tick(ctx)
		case <-ctx.Done():
			log.Info("Stopped keeper")
			return
		}
	}
}

// Tick settles every due claim once and returns how many were settled.
func (k *Keeper) Tick(ctx context.Context) (settled int) {
	for _, id := range k.settler.DueClaims() {
		if ctx.Err() != nil {
			return settled
		}
		res, err := k.settler.SettleClaim(ctx, id)
		switch {
		case err == nil:
			settled++
			log.Infof("Keeper settled claim %d, passed %v", id, res.Passed)
		case errors.Is(err, claim.NoVotesCastError), errors.Is(err, claim.ActiveDisputeError):
			log.Debugf("Keeper skipped claim %d: %v", id, err)
		default:
			log.Warningf("Keeper can't settle claim %d: %v", id, err)
		}
	}
	return settled
}
