package reputation

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const week = int64(7 * 24 * 3600)

func TestDecayPercent(t *testing.T) {
	p := params.Default()
	testData := []struct {
		epochs   uint64
		expected uint64
	}{
		{0, 0},
		{4, 0},
		{5, 500},
		{8, 2000},
		{14, 5000},
		{1000, 5000},
		{^uint64(0), 5000},
	}
	for _, d := range testData {
		assert.Equal(t, d.expected, DecayPercent(d.epochs, p), "epochs %d", d.epochs)
	}
}

func TestEffectiveReputation_Monotonic(t *testing.T) {
	p := params.Default()
	st := &state.ReputationState{Base: params.Scaled(2, 1), LastActivity: 1000}
	floor := common.MulDiv(st.Base, big.NewInt(int64(params.Basis-p.MaxDecayPercent)), big.NewInt(int64(params.Basis)))

	prev := EffectiveReputation(st, p, 1000)
	assert.Equal(t, 0, prev.Cmp(st.Base))
	for now := int64(1000); now < 1000+40*week; now += week / 3 {
		cur := EffectiveReputation(st, p, now)
		assert.True(t, cur.Cmp(prev) <= 0, "reputation grew at %d", now)
		assert.True(t, cur.Cmp(floor) >= 0, "reputation below floor at %d", now)
		prev = cur
	}
	assert.Equal(t, 0, prev.Cmp(floor))
}

func TestEffectiveReputation_Grace(t *testing.T) {
	p := params.Default()
	st := &state.ReputationState{Base: big.NewInt(10000), LastActivity: 0}
	assert.Equal(t, int64(10000), EffectiveReputation(st, p, 5*week-1).Int64())
	assert.Equal(t, int64(9500), EffectiveReputation(st, p, 5*week).Int64())
	assert.Equal(t, int64(10000), EffectiveReputation(st, p, -5).Int64())
}

type reader struct {
	reps map[common.Address]*state.ReputationState
	p    *params.Params
}

func (r *reader) Reputation(identity common.Address) (*state.ReputationState, bool) {
	st, f := r.reps[identity]
	return st, f
}

func (r *reader) Params() *params.Params {
	return r.p
}

func TestDecaySource(t *testing.T) {
	id := common.GenerateAddress()
	clock := common.NewManualClock(0)
	src := NewDecaySource(&reader{
		reps: map[common.Address]*state.ReputationState{id: {Base: params.Scaled(2, 1)}},
		p:    params.Default(),
	}, clock)

	active, e := src.IsActive(context.Background())
	require.NoError(t, e)
	assert.True(t, active)

	clock.Set(6 * week)
	s, e := src.Score(context.Background(), id)
	require.NoError(t, e)
	assert.Equal(t, 0, s.Cmp(params.Scaled(18, 10)))

	_, e = src.Score(context.Background(), common.GenerateAddress())
	assert.Equal(t, NotRatedError, e)
}

func TestClassifyTier(t *testing.T) {
	p := params.Default()
	assert.Equal(t, Bronze, ClassifyTier(params.Scaled(1, 1), p))
	assert.Equal(t, Silver, ClassifyTier(params.Scaled(3, 2), p))
	assert.Equal(t, Silver, ClassifyTier(params.Scaled(249, 100), p))
	assert.Equal(t, Gold, ClassifyTier(params.Scaled(5, 2), p))
	assert.Equal(t, uint64(12500), Silver.Multiplier(p))
	assert.Equal(t, "gold", Gold.String())
}
