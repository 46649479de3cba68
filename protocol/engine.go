package protocol

import (
	"context"
	"sync"
	"time"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/metrics"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("protocol")

var (
	ReentrantCallError  = common.NewError(common.StateConflict, "reentrant call from within an operation")
	PausedError         = common.NewError(common.Paused, "protocol is paused")
	NotInitializedError = common.NewError(common.Internal, "protocol state is not initialized")
)

type callKey struct{}

// InOperation reports whether ctx was handed out by a running engine operation, to the oracle or
// to the ledger. Calls into the engine with such a ctx are rejected instead of waiting for the
// lock the operation holds.
func InOperation(ctx context.Context) bool {
	return ctx.Value(callKey{}) != nil
}

// Engine is the single writer of the protocol state. Mutating operations are serialized by one
// lock and each either commits all of its changes, its transfer included, or none of them.
type Engine struct {
	db       *state.DB
	ledger   stake.Ledger
	calc     *reputation.Calculator
	registry *claim.Registry
	clock    common.Clock
	bus      common.EventBus

	lock sync.Mutex
}

func NewEngine(db *state.DB, ledger stake.Ledger, src reputation.Source, clock common.Clock, bus common.EventBus) *Engine {
	calc := reputation.NewCalculator(src)
	return NewEngineWith(db, ledger, calc, clock, bus)
}

func NewEngineWith(db *state.DB, ledger stake.Ledger, calc *reputation.Calculator, clock common.Clock, bus common.EventBus) *Engine {
	if bus == nil {
		bus = &common.NullBus{}
	}
	return &Engine{
		db:       db,
		ledger:   ledger,
		calc:     calc,
		registry: claim.NewRegistry(calc),
		clock:    clock,
		bus:      bus,
	}
}

// operation gets the marked ctx; everything it calls out with must use that ctx.
type operation func(ctx context.Context, r *state.Record, p *params.Params, now int64) error

// execute runs op against a fresh record. The queued transfer runs after op succeeded and before
// the record is committed; a failed transfer discards the record. Concurrent callers wait on the
// lock, a callback from inside an operation gets ReentrantCallError.
func (e *Engine) execute(ctx context.Context, name string, op operation) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(name, start, err)
		if err != nil {
			log.Infof("%v rejected: %v", name, err)
		}
	}()

	if InOperation(ctx) {
		return ReentrantCallError
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	ctx = context.WithValue(ctx, callKey{}, name)

	p := e.db.Params()
	if p == nil {
		return NotInitializedError
	}
	r := e.db.NewRecord()
	if err := op(ctx, r, p, e.clock.Now()); err != nil {
		r.Discard()
		return err
	}
	if t := r.Transfer(); t != nil {
		if err := e.transfer(ctx, t); err != nil {
			r.Discard()
			return errors.Wrap(stake.TransferFailedError, err.Error())
		}
	}

	events, cerr := r.Commit()
	if cerr != nil {
		log.Error("Operation committed without persistence", name, cerr)
	}
	metrics.SetOpenClaims(e.db.OpenClaims())
	for _, ev := range events {
		e.bus.FireEvent(ev)
	}
	log.Debugf("%v committed", name)

	return nil
}

func (e *Engine) transfer(ctx context.Context, t *state.Transfer) error {
	if t.Direction == state.In {
		return e.ledger.TransferIn(ctx, t.Peer, t.Amount)
	}
	return e.ledger.TransferOut(ctx, t.Peer, t.Amount)
}

func authorize(r *state.Record, caller common.Address, needed permission.Capability) error {
	if err := common.CheckIdentity(caller); err != nil {
		return err
	}
	return permission.Require(r.Role(caller), needed)
}

func (e *Engine) DB() *state.DB {
	return e.db
}

func (e *Engine) Clock() common.Clock {
	return e.clock
}
