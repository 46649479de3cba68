package run

import (
	"context"
	"math/big"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContext_NeedsSeed(t *testing.T) {
	_, e := CreateContext(&common.Settings{})
	assert.True(t, errors.Is(e, NoAdminError))
}

func TestCreateContext_UnknownOracle(t *testing.T) {
	s := &common.Settings{}
	s.Oracle.Type = "chainlink"
	_, e := CreateContext(s)
	assert.True(t, errors.Is(e, UnknownOracleError))
}

func TestCreateContext_ProtocolSettings(t *testing.T) {
	s := &common.Settings{}
	s.Seed.Path = writeSeed(t, seedYAML())
	s.Protocol.VotingWindow = 60
	s.Protocol.MinStake = "5"
	s.Rpc.Address = "127.0.0.1:0"

	c, e := CreateContext(s)
	require.NoError(t, e)
	p := c.Engine().Params()
	assert.Equal(t, int64(60), p.VotingWindow)
	assert.Equal(t, int64(5), p.MinStake.Int64())
	assert.Equal(t, params.Default().ThresholdPercent, p.ThresholdPercent)
	assert.NotNil(t, c.rpc)

	s.Protocol.ThresholdPercent = 101
	s.Seed.Path = writeSeed(t, seedYAML())
	_, e = CreateContext(s)
	assert.True(t, errors.Is(e, params.InvalidParamsError))
}

func TestCreateContext_DecayOracle(t *testing.T) {
	s := &common.Settings{}
	s.Seed.Path = writeSeed(t, seedYAML())
	s.Oracle.Type = "decay"
	s.Oracle.CacheTTL = 60

	c, e := CreateContext(s)
	require.NoError(t, e)
	_, cached := c.Source().(*reputation.CachedSource)
	assert.True(t, cached)

	ctx := context.Background()
	active, e := c.Source().IsActive(ctx)
	require.NoError(t, e)
	assert.True(t, active)
	score, e := c.Source().Score(ctx, alice)
	require.NoError(t, e)
	assert.Equal(t, 0, score.Cmp(params.Scaled(2, 1)))

	// the book weights votes: alice votes with twice her stake
	id, e := c.Engine().CreateClaim(ctx, bob, "ipfs://c")
	require.NoError(t, e)
	v, e := c.Engine().Vote(ctx, alice, id, true, big.NewInt(100))
	require.NoError(t, e)
	assert.Equal(t, int64(200), v.Effective.Int64())
}
