package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapability_Set(t *testing.T) {
	c := None.With(Settle)
	assert.True(t, c.Has(Settle))
	assert.False(t, c.Has(Administer))

	c = c.With(Administer)
	assert.Equal(t, "administer|settle", c.String())

	c = c.Without(Settle)
	assert.False(t, c.Has(Settle))
	assert.False(t, None.Has(None))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(Administer|Settle, Settle))
	assert.Equal(t, NotAdminError, Require(Settle, Administer))
	assert.Equal(t, NotSettlerError, Require(Administer, Settle))
}

func TestParse(t *testing.T) {
	c, e := Parse(" Admin ")
	assert.NoError(t, e)
	assert.Equal(t, Administer, c)

	_, e = Parse("root")
	assert.Equal(t, UnknownCapError, e)
	assert.False(t, Capability(4).Valid())
}
