package run

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = common.Address{0x01}
	settler = common.Address{0x02}
	alice   = common.Address{0x0a}
	bob     = common.Address{0x0b}
)

func seedYAML() string {
	return `
admins:
  - "` + admin.Hex() + `"
settlers:
  - "` + settler.Hex() + `"
  - "` + admin.Hex() + `"
balances:
  "` + alice.Hex() + `": "1000"
  "` + bob.Hex() + `": "500"
deposits:
  "` + alice.Hex() + `": "400"
reputations:
  "` + alice.Hex() + `": "2000000000000000000"
`
}

func writeSeed(t *testing.T, content string) string {
	p := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, ioutil.WriteFile(p, []byte(content), 0644))
	return p
}

func TestSeed_Roles(t *testing.T) {
	seed, e := SeedFromFile(writeSeed(t, seedYAML()))
	require.NoError(t, e)

	roles, e := seed.Roles()
	require.NoError(t, e)
	assert.Len(t, roles, 2)
	assert.Equal(t, permission.Settle, roles[settler])
	assert.True(t, roles[admin].Has(permission.Administer))
	assert.True(t, roles[admin].Has(permission.Settle))
}

func TestSeed_Errors(t *testing.T) {
	_, e := SeedFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, e)

	_, e = ParseSeed([]byte("admins: {"))
	assert.Error(t, e)

	seed, e := ParseSeed([]byte("settlers: []"))
	require.NoError(t, e)
	_, e = seed.Roles()
	assert.Equal(t, NoAdminError, e)

	seed, _ = ParseSeed([]byte("admins: [\"nobody\"]"))
	_, e = seed.Roles()
	assert.Equal(t, common.Validation, common.KindOf(e))
}

func TestSeed_Apply(t *testing.T) {
	s := &common.Settings{}
	s.Seed.Path = writeSeed(t, seedYAML())
	s.Oracle.DefaultActive = true

	c, e := CreateContext(s)
	require.NoError(t, e)
	engine := c.Engine()

	assert.Equal(t, int64(600), c.Ledger().Balance(alice).Int64())
	assert.Equal(t, int64(500), c.Ledger().Balance(bob).Int64())
	assert.Equal(t, int64(400), c.Ledger().Custody().Int64())
	assert.Equal(t, int64(400), engine.Pool(alice).TotalStaked.Int64())

	score, e := engine.EffectiveReputation(alice)
	require.NoError(t, e)
	assert.Equal(t, 0, score.Cmp(params.Scaled(2, 1)))

	static, ok := c.Source().(*reputation.StaticSource)
	require.True(t, ok)
	got, e := static.Score(context.Background(), alice)
	require.NoError(t, e)
	assert.Equal(t, 0, got.Cmp(params.Scaled(2, 1)))
}

func TestSeed_BadAmount(t *testing.T) {
	s := &common.Settings{}
	s.Seed.Path = writeSeed(t, "admins: [\""+admin.Hex()+"\"]\nbalances:\n  \""+alice.Hex()+"\": \"ten\"\n")

	_, e := CreateContext(s)
	assert.Error(t, e)
}
