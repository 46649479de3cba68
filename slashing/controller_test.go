package slashing

import (
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/gagarinchain/claimnet/state"
	"github.com/gagarinchain/claimnet/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t   *testing.T
	db  *state.DB
	p   *params.Params
	now int64
}

var caller = common.Address{0xaa}

func newFixture(t *testing.T) *fixture {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	return &fixture{t: t, db: state.NewStateDB(s), p: params.Default(), now: 10000}
}

func (f *fixture) fund(a common.Address, amount int64) {
	r := f.db.NewRecord()
	require.NoError(f.t, stake.Deposit(r.PoolForUpdate(a), big.NewInt(amount)))
	_, e := r.Commit()
	require.NoError(f.t, e)
}

func (f *fixture) run(fn func(c *Controller, r *state.Record) error) error {
	r := f.db.NewRecord()
	if err := fn(NewController(stake.NewStore(r)), r); err != nil {
		r.Discard()
		return err
	}
	_, e := r.Commit()
	require.NoError(f.t, e)
	return nil
}

func (f *fixture) slash(a common.Address, pct uint64) error {
	return f.run(func(c *Controller, r *state.Record) error {
		_, err := c.Slash(r, f.p, caller, Request{Identity: a, Percentage: pct, Reason: "spam"}, f.now)
		return err
	})
}

func TestController_Slash(t *testing.T) {
	f := newFixture(t)
	a := common.GenerateAddress()
	f.fund(a, 1000)

	require.NoError(t, f.slash(a, 10))
	assert.Equal(t, int64(900), f.db.Pool(a).TotalStaked.Int64())

	acc := f.db.SlashAccount(a)
	require.Len(t, acc.History, 1)
	assert.Equal(t, int64(100), acc.History[0].Amount.Int64())
	assert.Equal(t, caller, acc.History[0].Caller)
	assert.Equal(t, RecordID(a, 0), acc.History[0].ID)
	assert.Equal(t, f.now, acc.LastSlash)
	assert.Equal(t, int64(100), acc.Lifetime.Int64())
}

func TestController_Validation(t *testing.T) {
	f := newFixture(t)
	a, poor, empty := common.GenerateAddress(), common.GenerateAddress(), common.GenerateAddress()
	f.fund(a, 1000)
	f.fund(poor, 1)

	assert.True(t, errors.Is(f.slash(a, 0), InvalidPercentageError))
	assert.True(t, errors.Is(f.slash(a, 51), InvalidPercentageError))
	assert.Equal(t, NoStakeToSlashError, f.slash(empty, 10))
	assert.Equal(t, SlashAmountTooHighError, f.slash(poor, 50))
	assert.Equal(t, common.ZeroIdentityError, f.slash(common.Address{}, 10))
	assert.Empty(t, f.db.SlashAccount(poor).History)

	f.p.MaxSlashPercentage = 100
	assert.NoError(t, f.slash(poor, 100))
	assert.Equal(t, int64(0), f.db.Pool(poor).TotalStaked.Int64())
}

func TestController_Cooldown(t *testing.T) {
	f := newFixture(t)
	a := common.GenerateAddress()
	f.fund(a, 1000)
	require.NoError(t, f.slash(a, 10))
	slashedAt := f.now

	f.now = slashedAt + f.p.SlashCooldown - 1
	e := f.slash(a, 10)
	assert.True(t, errors.Is(e, SlashingTooFrequentError))
	assert.Equal(t, common.RateLimit, common.KindOf(e))

	f.now = slashedAt + f.p.SlashCooldown
	assert.NoError(t, f.slash(a, 10))
	assert.Equal(t, int64(810), f.db.Pool(a).TotalStaked.Int64())
	assert.Len(t, f.db.SlashAccount(a).History, 2)
}

func TestController_SlashBelowLocks(t *testing.T) {
	f := newFixture(t)
	a := common.GenerateAddress()
	f.fund(a, 100)
	r := f.db.NewRecord()
	require.NoError(t, stake.Lock(r.PoolForUpdate(a), big.NewInt(100)))
	_, e := r.Commit()
	require.NoError(t, e)

	require.NoError(t, f.slash(a, 50))
	p := f.db.Pool(a)
	assert.Equal(t, int64(50), p.TotalStaked.Int64())
	assert.Equal(t, int64(100), p.ActiveStakes.Int64())
	assert.Equal(t, int64(0), p.Available().Int64())
}

// the second identity is within cooldown, nothing of the batch may stick
func TestController_BatchPartialFailure(t *testing.T) {
	f := newFixture(t)
	ids := []common.Address{common.GenerateAddress(), common.GenerateAddress(), common.GenerateAddress()}
	for _, a := range ids {
		f.fund(a, 1000)
	}
	require.NoError(t, f.slash(ids[1], 10))
	f.now += 60

	reqs, e := NewRequests(ids, []uint64{10, 10, 10}, []string{"a", "b", "c"})
	require.NoError(t, e)
	e = f.run(func(c *Controller, r *state.Record) error {
		_, err := c.BatchSlash(r, f.p, caller, reqs, f.now)
		return err
	})
	assert.True(t, errors.Is(e, SlashingTooFrequentError))

	assert.Empty(t, f.db.SlashAccount(ids[0]).History)
	assert.Empty(t, f.db.SlashAccount(ids[2]).History)
	assert.Len(t, f.db.SlashAccount(ids[1]).History, 1)
	assert.Equal(t, int64(1000), f.db.Pool(ids[0]).TotalStaked.Int64())
	assert.Equal(t, int64(1000), f.db.Pool(ids[2]).TotalStaked.Int64())
}

func TestController_Batch(t *testing.T) {
	f := newFixture(t)
	ids := []common.Address{common.GenerateAddress(), common.GenerateAddress()}
	for _, a := range ids {
		f.fund(a, 1000)
	}

	_, e := NewRequests(ids, []uint64{10}, []string{"a", "b"})
	assert.Equal(t, MismatchedLengthsError, e)

	var recs []*state.SlashRecord
	require.NoError(t, f.run(func(c *Controller, r *state.Record) error {
		var err error
		recs, err = c.BatchSlash(r, f.p, caller, []Request{{ids[0], 10, "a"}, {ids[1], 20, "b"}}, f.now)
		return err
	}))
	assert.Len(t, recs, 2)
	assert.Equal(t, int64(800), f.db.Pool(ids[1]).TotalStaked.Int64())

	oversized := make([]Request, params.MaxBatchSize+1)
	e = f.run(func(c *Controller, r *state.Record) error {
		_, err := c.BatchSlash(r, f.p, caller, oversized, f.now)
		return err
	})
	assert.True(t, errors.Is(e, BatchSizeError))
}

func TestRecordID_Deterministic(t *testing.T) {
	a := common.GenerateAddress()
	assert.Equal(t, RecordID(a, 3), RecordID(a, 3))
	assert.NotEqual(t, RecordID(a, 3), RecordID(a, 4))
}
