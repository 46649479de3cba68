package run

import (
	"context"
	"testing"
	"time"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/mocks"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestKeeper_Tick(t *testing.T) {
	settler := &mocks.Settler{}
	settler.On("DueClaims").Return([]uint64{1, 2, 3, 4})
	settler.On("SettleClaim", mock.Anything, uint64(1)).Return(&state.SettlementResult{ClaimID: 1, Passed: true}, nil)
	settler.On("SettleClaim", mock.Anything, uint64(2)).Return(nil, claim.NoVotesCastError)
	settler.On("SettleClaim", mock.Anything, uint64(3)).Return(nil, errors.Wrap(claim.ActiveDisputeError, "claim 3"))
	settler.On("SettleClaim", mock.Anything, uint64(4)).Return(&state.SettlementResult{ClaimID: 4}, nil)

	k := NewKeeper(settler, time.Second)
	assert.Equal(t, 2, k.Tick(context.Background()))
	settler.AssertNumberOfCalls(t, "SettleClaim", 4)
}

func TestKeeper_TickStopsOnCancel(t *testing.T) {
	settler := &mocks.Settler{}
	settler.On("DueClaims").Return([]uint64{1, 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	k := NewKeeper(settler, time.Second)
	assert.Equal(t, 0, k.Tick(ctx))
	settler.AssertNotCalled(t, "SettleClaim", mock.Anything, mock.Anything)
}

func TestKeeper_Run(t *testing.T) {
	settler := &mocks.Settler{}
	settled := make(chan struct{}, 1)
	settler.On("DueClaims").Return([]uint64{7})
	settler.On("SettleClaim", mock.Anything, uint64(7)).Return(&state.SettlementResult{ClaimID: 7}, nil).Run(func(args mock.Arguments) {
		select {
		case settled <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		NewKeeper(settler, 10*time.Millisecond).Run(ctx)
		close(stopped)
	}()

	select {
	case <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("keeper never settled")
	}
	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("keeper ignored cancellation")
	}
}
