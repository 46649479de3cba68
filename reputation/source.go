package reputation

import (
	"context"
	"math/big"
	"sync"

	"github.com/gagarinchain/claimnet/common"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("reputation")

var (
	OracleUnavailableError = common.NewError(common.ExternalDependency, "reputation source unavailable")
	NotRatedError          = common.NewError(common.NotFound, "identity has no reputation score")
)

// Source is the external reputation oracle. Both calls may fail; callers never propagate the failure.
// A source that calls back into the protocol must pass on the ctx it was given.
type Source interface {
	IsActive(ctx context.Context) (bool, error)
	Score(ctx context.Context, identity common.Address) (*big.Int, error)
}

// Result is the outcome of one oracle round trip. Err is set when the oracle failed, Active is false
// when it reported itself inactive; in both cases Score is nil.
type Result struct {
	Active bool
	Score  *big.Int
	Err    error
}

func (r Result) Usable() bool {
	return r.Err == nil && r.Active && r.Score != nil
}

// Query asks src for the identity score. Errors and panics of the source are folded into the result.
func Query(ctx context.Context, src Source, identity common.Address) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: errors.Wrapf(OracleUnavailableError, "panic: %v", r)}
		}
	}()

	if src == nil {
		return Result{Err: OracleUnavailableError}
	}
	active, err := src.IsActive(ctx)
	if err != nil {
		return Result{Err: errors.Wrap(OracleUnavailableError, err.Error())}
	}
	if !active {
		return Result{}
	}
	score, err := src.Score(ctx, identity)
	if err != nil {
		return Result{Err: errors.Wrap(OracleUnavailableError, err.Error())}
	}
	if score == nil || score.Sign() < 0 {
		return Result{Err: errors.Wrap(OracleUnavailableError, "malformed score")}
	}
	return Result{Active: true, Score: new(big.Int).Set(score)}
}

// StaticSource serves scores from memory. It is the seed-driven oracle of a standalone node.
type StaticSource struct {
	lock   sync.RWMutex
	active bool
	scores map[common.Address]*big.Int
}

func NewStaticSource(active bool) *StaticSource {
	return &StaticSource{active: active, scores: make(map[common.Address]*big.Int)}
}

func (s *StaticSource) IsActive(ctx context.Context) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.active, nil
}

func (s *StaticSource) Score(ctx context.Context, identity common.Address) (*big.Int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	score, f := s.scores[identity]
	if !f {
		return nil, NotRatedError
	}
	return new(big.Int).Set(score), nil
}

func (s *StaticSource) SetActive(active bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.active = active
}

func (s *StaticSource) SetScore(identity common.Address, score *big.Int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.scores[identity] = new(big.Int).Set(score)
}
