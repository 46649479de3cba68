package protocol

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/claim"
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/slashing"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_SlashRequiresSettle(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	target := n.funded(t, 1000)

	_, e := n.engine.Slash(ctx, n.admin, target, 10, "spam")
	assert.Equal(t, permission.NotSettlerError, e)
	assert.Equal(t, common.Authorization, common.KindOf(e))

	rec, e := n.engine.Slash(ctx, n.settler, target, 10, "spam")
	require.NoError(t, e)
	assert.Equal(t, int64(100), rec.Amount.Int64())
	assert.Equal(t, n.settler, rec.Caller)
	assert.Equal(t, int64(900), n.engine.Pool(target).TotalStaked.Int64())
	assert.Equal(t, int64(100), n.engine.LifetimeSlashed(target).Int64())
	assert.Len(t, n.engine.SlashHistory(target), 1)
}

func TestEngine_Pause(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	targets := []common.Address{n.funded(t, 1000), n.funded(t, 1000)}

	assert.Equal(t, permission.NotAdminError, n.engine.Pause(ctx, n.settler))
	require.NoError(t, n.engine.Pause(ctx, n.admin))
	assert.True(t, n.engine.Paused())

	_, e := n.engine.Slash(ctx, n.settler, targets[0], 10, "spam")
	assert.Equal(t, PausedError, e)
	assert.True(t, common.Retryable(common.KindOf(e)))
	_, e = n.engine.BatchSlash(ctx, n.settler, targets, []uint64{10, 10}, []string{"a", "b"})
	assert.Equal(t, PausedError, e)

	// administration keeps working
	require.NoError(t, n.engine.SetSlashCooldown(ctx, n.admin, 3600))
	require.NoError(t, n.engine.GrantSettle(ctx, n.admin, targets[1]))

	require.NoError(t, n.engine.Unpause(ctx, n.admin))
	recs, e := n.engine.BatchSlash(ctx, n.settler, targets, []uint64{10, 20}, []string{"a", "b"})
	require.NoError(t, e)
	assert.Len(t, recs, 2)
}

func TestEngine_BatchSlashAtomic(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	ids := []common.Address{n.funded(t, 1000), n.funded(t, 1000), n.funded(t, 1000)}
	_, e := n.engine.Slash(ctx, n.settler, ids[1], 10, "first")
	require.NoError(t, e)
	n.clock.Advance(60)

	_, e = n.engine.BatchSlash(ctx, n.settler, ids, []uint64{10, 10, 10}, []string{"a", "b", "c"})
	assert.True(t, errors.Is(e, slashing.SlashingTooFrequentError))
	assert.Empty(t, n.engine.SlashHistory(ids[0]))
	assert.Empty(t, n.engine.SlashHistory(ids[2]))
	assert.Equal(t, int64(1000), n.engine.Pool(ids[0]).TotalStaked.Int64())

	_, e = n.engine.BatchSlash(ctx, n.settler, ids, []uint64{10}, []string{"a", "b", "c"})
	assert.Equal(t, slashing.MismatchedLengthsError, e)
}

func TestEngine_Roles(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	other := common.GenerateAddress()

	assert.Equal(t, permission.NotAdminError, n.engine.GrantSettle(ctx, n.settler, other))
	assert.Equal(t, common.ZeroIdentityError, n.engine.GrantSettle(ctx, n.admin, common.Address{}))

	require.NoError(t, n.engine.GrantSettle(ctx, n.admin, other))
	assert.True(t, n.engine.HasCapability(other, permission.Settle))
	require.NoError(t, n.engine.RevokeSettle(ctx, n.admin, other))
	assert.False(t, n.engine.HasCapability(other, permission.Settle))

	assert.Equal(t, permission.LastAdminError, n.engine.RevokeAdmin(ctx, n.admin, n.admin))
	require.NoError(t, n.engine.GrantAdmin(ctx, n.admin, other))
	require.NoError(t, n.engine.RevokeAdmin(ctx, other, n.admin))
	assert.False(t, n.engine.HasCapability(n.admin, permission.Administer))
	assert.Equal(t, permission.LastAdminError, n.engine.RevokeAdmin(ctx, other, other))
}

func TestEngine_UpdateParams(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	before := n.engine.Params()

	testData := []struct {
		name string
		call func() error
	}{
		{"max slash above 100", func() error { return n.engine.SetMaxSlashPercentage(ctx, n.admin, 101) }},
		{"cooldown above bound", func() error { return n.engine.SetSlashCooldown(ctx, n.admin, params.MaxSlashCooldown+1) }},
		{"min score zero", func() error { return n.engine.SetReputationBounds(ctx, n.admin, big.NewInt(0), params.Scale) }},
		{"min above max", func() error { return n.engine.SetReputationBounds(ctx, n.admin, params.Scaled(2, 1), params.Scale) }},
		{"default score zero", func() error { return n.engine.SetDefaultScore(ctx, n.admin, big.NewInt(0)) }},
		{"decay above basis", func() error { return n.engine.SetDecayParams(ctx, n.admin, params.Basis+1, 3600, 1, 100) }},
		{"silver above gold", func() error { return n.engine.SetTierThresholds(ctx, n.admin, params.Scaled(3, 1), params.Scaled(2, 1)) }},
		{"threshold zero", func() error { return n.engine.SetSettlementParams(ctx, n.admin, 0, 20, 80) }},
		{"voting window zero", func() error { return n.engine.SetVotingWindow(ctx, n.admin, 0) }},
		{"min stake zero", func() error { return n.engine.SetMinStake(ctx, n.admin, big.NewInt(0)) }},
	}
	for _, d := range testData {
		e := d.call()
		assert.True(t, errors.Is(e, params.InvalidParamsError), d.name)
		assert.Equal(t, common.Validation, common.KindOf(e), d.name)
	}
	assert.Equal(t, before, n.engine.Params())

	require.NoError(t, n.engine.SetWeightingEnabled(ctx, n.admin, false))
	require.NoError(t, n.engine.SetSettlementParams(ctx, n.admin, 51, 30, 50))
	require.NoError(t, n.engine.SetMinStake(ctx, n.admin, big.NewInt(1)))
	p := n.engine.Params()
	assert.False(t, p.WeightingEnabled)
	assert.Equal(t, uint64(51), p.ThresholdPercent)
	assert.Equal(t, int64(1), p.MinStake.Int64())

	assert.Equal(t, permission.NotAdminError, n.engine.SetMinStake(ctx, n.settler, big.NewInt(5)))
}

func TestEngine_ReputationOps(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	a := common.GenerateAddress()

	assert.Equal(t, permission.NotSettlerError, n.engine.SetReputation(ctx, n.admin, a, params.Scale))
	assert.Equal(t, reputation.NotRatedError, n.engine.RecordActivity(ctx, n.settler, a))
	require.NoError(t, n.engine.SetReputation(ctx, n.settler, a, params.Scaled(3, 1)))

	tier, mult, e := n.engine.Tier(a)
	require.NoError(t, e)
	assert.Equal(t, reputation.Gold, tier)
	assert.Equal(t, uint64(15000), mult)

	p := n.engine.Params()
	n.clock.Advance(int64(p.InactivityThreshold+10) * p.EpochDuration)
	score, e := n.engine.EffectiveReputation(a)
	require.NoError(t, e)
	assert.Equal(t, 0, score.Cmp(params.Scaled(3, 2)))

	require.NoError(t, n.engine.RecordActivity(ctx, n.settler, a))
	score, _ = n.engine.EffectiveReputation(a)
	assert.Equal(t, 0, score.Cmp(params.Scaled(3, 1)))
}

func TestEngine_VoteRecordsActivity(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	voter := n.funded(t, 100)
	require.NoError(t, n.engine.SetReputation(ctx, n.settler, voter, params.Scale))
	id, _ := n.engine.CreateClaim(ctx, common.GenerateAddress(), "c")

	n.clock.Advance(3600)
	_, e := n.engine.Vote(ctx, voter, id, true, big.NewInt(10))
	require.NoError(t, e)
	st, _ := n.db.Reputation(voter)
	assert.Equal(t, n.clock.Now(), st.LastActivity)
}

func TestEngine_DisputeFlow(t *testing.T) {
	n := newTestNode(t, nil)
	ctx := context.Background()
	require.NoError(t, n.engine.SetDisputeWindow(ctx, n.admin, 3600))
	voter := n.funded(t, 100)
	id, _ := n.engine.CreateClaim(ctx, common.GenerateAddress(), "c")
	_, e := n.engine.Vote(ctx, voter, id, true, big.NewInt(10))
	require.NoError(t, e)

	n.endVoting()
	assert.Equal(t, permission.NotSettlerError, n.engine.OpenDispute(ctx, n.admin, id, "fraud"))
	require.NoError(t, n.engine.OpenDispute(ctx, n.settler, id, "fraud"))
	assert.Empty(t, n.engine.DueClaims())
	n.clock.Advance(3600)
	assert.Equal(t, []uint64{id}, n.engine.DueClaims())

	_, e = n.engine.SettleClaim(ctx, id)
	assert.Equal(t, claim.ActiveDisputeError, e)
	require.NoError(t, n.engine.ResolveDispute(ctx, n.settler, id))
	_, e = n.engine.SettleClaim(ctx, id)
	require.NoError(t, e)
	assert.Empty(t, n.engine.DueClaims())
}
