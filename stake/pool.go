package stake

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/state"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("stake")

var (
	ZeroAmountError                 = common.NewError(common.Validation, "amount must be positive")
	InsufficientAvailableStakeError = common.NewError(common.Resource, "insufficient available stake")
	ExceedsBalanceError             = common.NewError(common.Resource, "reduction exceeds staked balance")
)

func Deposit(p *state.StakePool, amount *big.Int) error {
	if !common.IsPositive(amount) {
		return ZeroAmountError
	}
	p.TotalStaked.Add(p.TotalStaked, amount)
	return nil
}

// Withdraw takes unlocked stake out of the pool.
func Withdraw(p *state.StakePool, amount *big.Int) error {
	if !common.IsPositive(amount) {
		return ZeroAmountError
	}
	if available := p.Available(); available.Cmp(amount) < 0 {
		return errors.Wrapf(InsufficientAvailableStakeError, "available %v, requested %v", available, amount)
	}
	p.TotalStaked.Sub(p.TotalStaked, amount)
	return nil
}

// Lock moves amount into active stakes; it needs totalStaked >= activeStakes + amount.
func Lock(p *state.StakePool, amount *big.Int) error {
	if !common.IsPositive(amount) {
		return ZeroAmountError
	}
	needed := new(big.Int).Add(p.ActiveStakes, amount)
	if p.TotalStaked.Cmp(needed) < 0 {
		return errors.Wrapf(InsufficientAvailableStakeError, "available %v, requested %v", p.Available(), amount)
	}
	p.ActiveStakes.Set(needed)
	return nil
}

// Unlock releases a lock. A pool that was slashed below its locks is clamped at zero.
func Unlock(p *state.StakePool, amount *big.Int) {
	p.ActiveStakes = common.SubFloor(p.ActiveStakes, amount)
}

// Burn removes a settled loss from both the lock and the balance.
func Burn(p *state.StakePool, amount *big.Int) {
	Unlock(p, amount)
	p.TotalStaked = common.SubFloor(p.TotalStaked, amount)
}

// Release settles a lock of amount, burning burn of it, and returns how much stake became
// available. That is less than amount - burn when the pool was slashed below its locks.
func Release(p *state.StakePool, amount, burn *big.Int) *big.Int {
	before := p.Available()
	if burn.Sign() > 0 {
		Burn(p, burn)
	}
	Unlock(p, common.SubFloor(amount, burn))
	return common.SubFloor(p.Available(), before)
}

// ForceReduce is the controller-only reduction of totalStaked. Locks are left untouched, so
// activeStakes may exceed totalStaked afterwards.
func ForceReduce(p *state.StakePool, amount *big.Int) error {
	if !common.IsPositive(amount) {
		return ZeroAmountError
	}
	if p.TotalStaked.Cmp(amount) < 0 {
		return errors.Wrapf(ExceedsBalanceError, "staked %v, reduction %v", p.TotalStaked, amount)
	}
	p.TotalStaked.Sub(p.TotalStaked, amount)
	return nil
}

// Store gives the slashing controller access to pools of a pending record.
type Store struct {
	record *state.Record
}

func NewStore(r *state.Record) *Store {
	return &Store{record: r}
}

func (s *Store) CurrentStake(identity common.Address) *big.Int {
	return s.record.Pool(identity).TotalStaked
}

func (s *Store) ForceReduce(identity common.Address, amount *big.Int) error {
	return ForceReduce(s.record.PoolForUpdate(identity), amount)
}
