package stake

import (
	"context"
	"math/big"
	"sync"

	"github.com/gagarinchain/claimnet/common"
	"github.com/pkg/errors"
)

var (
	InsufficientBalanceError = common.NewError(common.Resource, "insufficient ledger balance")
	TransferFailedError      = common.NewError(common.ExternalDependency, "token transfer failed")
)

// Ledger is the fungible token ledger the protocol holds custody on. Transfers are atomic; a
// returned error means nothing moved. A ledger that calls back into the protocol must pass on the
// ctx it was given, so the call is refused instead of deadlocking.
type Ledger interface {
	TransferIn(ctx context.Context, from common.Address, amount *big.Int) error
	TransferOut(ctx context.Context, to common.Address, amount *big.Int) error
}

// MemoryLedger keeps balances in memory. Custody is the balance held by the protocol itself.
type MemoryLedger struct {
	lock     sync.Mutex
	balances map[common.Address]*big.Int
	custody  *big.Int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[common.Address]*big.Int), custody: new(big.Int)}
}

// Mint credits an account out of thin air; used for genesis balances only.
func (l *MemoryLedger) Mint(to common.Address, amount *big.Int) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.balance(to).Add(l.balance(to), amount)
}

func (l *MemoryLedger) balance(a common.Address) *big.Int {
	b, f := l.balances[a]
	if !f {
		b = new(big.Int)
		l.balances[a] = b
	}
	return b
}

func (l *MemoryLedger) Balance(a common.Address) *big.Int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return new(big.Int).Set(l.balance(a))
}

func (l *MemoryLedger) Custody() *big.Int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return new(big.Int).Set(l.custody)
}

func (l *MemoryLedger) TransferIn(ctx context.Context, from common.Address, amount *big.Int) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	b := l.balance(from)
	if b.Cmp(amount) < 0 {
		return errors.Wrapf(InsufficientBalanceError, "%v has %v, needs %v", from.Hex(), b, amount)
	}
	b.Sub(b, amount)
	l.custody.Add(l.custody, amount)
	return nil
}

func (l *MemoryLedger) TransferOut(ctx context.Context, to common.Address, amount *big.Int) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.custody.Cmp(amount) < 0 {
		return errors.Wrapf(InsufficientBalanceError, "custody has %v, needs %v", l.custody, amount)
	}
	l.custody.Sub(l.custody, amount)
	b := l.balance(to)
	b.Add(b, amount)
	return nil
}
