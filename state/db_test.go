package state

import (
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*DB, storage.Storage) {
	s, e := storage.NewStorage("", nil)
	require.NoError(t, e)
	return NewStateDB(s), s
}

func TestDB_Init(t *testing.T) {
	db, s := newTestDB(t)
	admin := common.GenerateAddress()

	assert.NoError(t, db.Init(params.Default(), map[common.Address]permission.Capability{admin: permission.Administer}))
	assert.True(t, db.Initialized())
	assert.Equal(t, permission.Administer, db.Role(admin))
	assert.Equal(t, NotEmptyInitDBError, db.Init(params.Default(), nil))

	reloaded := NewStateDB(s)
	assert.Equal(t, params.Default(), reloaded.Params())
	assert.Equal(t, []common.Address{admin}, reloaded.Admins())
}

func TestRecord_DiscardLeavesStateUntouched(t *testing.T) {
	db, _ := newTestDB(t)
	a := common.GenerateAddress()

	r := db.NewRecord()
	id := r.NextClaimID()
	r.PutClaim(NewClaim(id, a, "sky is blue", 10, 100))
	p := r.PoolForUpdate(a)
	p.TotalStaked.SetInt64(500)
	r.Discard()

	_, found := db.Claim(id)
	assert.False(t, found)
	assert.Equal(t, int64(0), db.Pool(a).TotalStaked.Int64())
	assert.Equal(t, uint64(0), db.Meta().LastClaimID)

	_, e := r.Commit()
	assert.Equal(t, RecordClosedError, e)
}

func TestRecord_CommitPersists(t *testing.T) {
	db, s := newTestDB(t)
	a := common.GenerateAddress()

	r := db.NewRecord()
	id := r.NextClaimID()
	c := NewClaim(id, a, "water is wet", 10, 100)
	c.RawFor.SetInt64(40)
	c.TotalStake.SetInt64(40)
	r.PutClaim(c)
	r.PutVote(VoteKey{Claim: id, Voter: a}, &Vote{Voted: true, Support: true, Stake: big.NewInt(40), Effective: big.NewInt(40), Score: params.Scale, CastAt: 20})
	acc := r.SlashAccountForUpdate(a)
	acc.History = append(acc.History, &SlashRecord{ID: "x", Timestamp: 5, Amount: big.NewInt(3), Percentage: 10, Reason: "spam", Caller: a})
	acc.Lifetime.SetInt64(3)
	r.AddEvent(common.ClaimCreated, id)

	events, e := r.Commit()
	require.NoError(t, e)
	assert.Len(t, events, 1)
	assert.Equal(t, common.ClaimCreated, events[0].T)

	reloaded := NewStateDB(s)
	loaded, found := reloaded.Claim(id)
	require.True(t, found)
	assert.Equal(t, "water is wet", loaded.Content)
	assert.Equal(t, int64(40), loaded.RawFor.Int64())
	assert.True(t, loaded.HasSideTotals())

	v, found := reloaded.Vote(VoteKey{Claim: id, Voter: a})
	require.True(t, found)
	assert.True(t, v.Support)
	assert.Equal(t, 0, v.Score.Cmp(params.Scale))

	loadedAcc := reloaded.SlashAccount(a)
	require.Len(t, loadedAcc.History, 1)
	assert.Equal(t, "spam", loadedAcc.History[0].Reason)
	assert.Equal(t, uint64(1), reloaded.Meta().LastClaimID)
}

func TestRecord_ForUpdateIsolation(t *testing.T) {
	db, _ := newTestDB(t)
	r := db.NewRecord()
	id := r.NextClaimID()
	r.PutClaim(NewClaim(id, common.GenerateAddress(), "c", 0, 10))
	_, e := r.Commit()
	require.NoError(t, e)

	r = db.NewRecord()
	c, found := r.ClaimForUpdate(id)
	require.True(t, found)
	c.WeightedFor.SetInt64(77)

	committed, _ := db.Claim(id)
	assert.Equal(t, int64(0), committed.WeightedFor.Int64())
	view, _ := r.Claim(id)
	assert.Equal(t, int64(77), view.WeightedFor.Int64())
}

func TestRecord_SingleTransfer(t *testing.T) {
	db, _ := newTestDB(t)
	r := db.NewRecord()
	a := common.GenerateAddress()

	assert.NoError(t, r.QueueTransfer(&Transfer{Direction: Out, Peer: a, Amount: big.NewInt(1)}))
	assert.Equal(t, TransferQueuedError, r.QueueTransfer(&Transfer{Direction: In, Peer: a, Amount: big.NewInt(1)}))
	assert.Equal(t, Out, r.Transfer().Direction)
}

func TestRecord_AdminCount(t *testing.T) {
	db, _ := newTestDB(t)
	a, b := common.GenerateAddress(), common.GenerateAddress()
	require.NoError(t, db.Init(params.Default(), map[common.Address]permission.Capability{
		a: permission.Administer,
		b: permission.Administer | permission.Settle,
	}))

	r := db.NewRecord()
	assert.Equal(t, 2, r.AdminCount())
	r.SetRole(b, permission.Settle)
	assert.Equal(t, 1, r.AdminCount())
	r.SetRole(a, permission.None)
	assert.Equal(t, 0, r.AdminCount())
}

func TestDB_DueClaims(t *testing.T) {
	db, _ := newTestDB(t)
	r := db.NewRecord()
	for _, end := range []int64{100, 50, 200} {
		id := r.NextClaimID()
		r.PutClaim(NewClaim(id, common.GenerateAddress(), "c", 0, end))
	}
	_, e := r.Commit()
	require.NoError(t, e)

	assert.Equal(t, []uint64{1, 2}, db.DueClaims(100, 0))
	assert.Equal(t, []uint64{2}, db.DueClaims(100, 10))

	r = db.NewRecord()
	c, _ := r.ClaimForUpdate(2)
	c.Settled = true
	_, e = r.Commit()
	require.NoError(t, e)
	assert.Equal(t, []uint64{1}, db.DueClaims(100, 0))
	assert.Equal(t, 2, db.OpenClaims())
}
