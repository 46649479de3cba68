package stake

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func pool(total, active int64) *state.StakePool {
	return &state.StakePool{TotalStaked: big.NewInt(total), ActiveStakes: big.NewInt(active)}
}

func TestLock(t *testing.T) {
	p := pool(100, 60)
	assert.NoError(t, Lock(p, big.NewInt(40)))
	assert.Equal(t, int64(100), p.ActiveStakes.Int64())

	e := Lock(p, big.NewInt(1))
	assert.True(t, errors.Is(e, InsufficientAvailableStakeError))
	assert.Equal(t, common.Resource, common.KindOf(e))
	assert.Equal(t, int64(100), p.ActiveStakes.Int64())

	assert.Equal(t, ZeroAmountError, Lock(p, big.NewInt(0)))
}

func TestWithdraw(t *testing.T) {
	p := pool(100, 70)
	assert.True(t, errors.Is(Withdraw(p, big.NewInt(31)), InsufficientAvailableStakeError))
	assert.NoError(t, Withdraw(p, big.NewInt(30)))
	assert.Equal(t, int64(70), p.TotalStaked.Int64())
	assert.Equal(t, ZeroAmountError, Withdraw(p, big.NewInt(-1)))
}

func TestForceReduce_LeavesLocks(t *testing.T) {
	p := pool(100, 90)
	assert.NoError(t, ForceReduce(p, big.NewInt(50)))
	assert.Equal(t, int64(50), p.TotalStaked.Int64())
	assert.Equal(t, int64(90), p.ActiveStakes.Int64())
	assert.Equal(t, int64(0), p.Available().Int64())

	assert.True(t, errors.Is(ForceReduce(p, big.NewInt(51)), ExceedsBalanceError))

	Unlock(p, big.NewInt(90))
	assert.Equal(t, int64(0), p.ActiveStakes.Int64())
	assert.Equal(t, int64(50), p.Available().Int64())
}

func TestBurn_Clamps(t *testing.T) {
	p := pool(10, 30)
	Burn(p, big.NewInt(20))
	assert.Equal(t, int64(0), p.TotalStaked.Int64())
	assert.Equal(t, int64(10), p.ActiveStakes.Int64())
}

func TestRelease_ReportsFreedStake(t *testing.T) {
	p := pool(100, 50)
	assert.Equal(t, int64(50), Release(p, big.NewInt(50), new(big.Int)).Int64())
	assert.Equal(t, int64(100), p.Available().Int64())

	// slashed to 20 while 50 was locked: burning 10 of the lock leaves 10
	p = pool(20, 50)
	assert.Equal(t, int64(10), Release(p, big.NewInt(50), big.NewInt(10)).Int64())
	assert.Equal(t, int64(10), p.TotalStaked.Int64())
	assert.Equal(t, int64(0), p.ActiveStakes.Int64())

	p = pool(30, 80)
	assert.Equal(t, int64(0), Release(p, big.NewInt(40), new(big.Int)).Int64())
	assert.Equal(t, int64(40), p.ActiveStakes.Int64())
}

func TestMemoryLedger_Conserves(t *testing.T) {
	l := NewMemoryLedger()
	a, b := common.GenerateAddress(), common.GenerateAddress()
	l.Mint(a, big.NewInt(1000))
	ctx := context.Background()

	assert.NoError(t, l.TransferIn(ctx, a, big.NewInt(400)))
	assert.True(t, errors.Is(l.TransferIn(ctx, b, big.NewInt(1)), InsufficientBalanceError))
	assert.NoError(t, l.TransferOut(ctx, b, big.NewInt(150)))
	assert.True(t, errors.Is(l.TransferOut(ctx, b, big.NewInt(251)), InsufficientBalanceError))

	assert.Equal(t, int64(600), l.Balance(a).Int64())
	assert.Equal(t, int64(150), l.Balance(b).Int64())
	assert.Equal(t, int64(250), l.Custody().Int64())
}
