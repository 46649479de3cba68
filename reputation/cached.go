package reputation

import (
	"context"
	"math/big"
	"time"

	"github.com/gagarinchain/claimnet/common"
	gocache "github.com/patrickmn/go-cache"
)

const activeKey = "active"

// CachedSource remembers successful answers of an oracle for a ttl. Failures are not cached, so
// a recovered oracle is used again on the next call.
type CachedSource struct {
	src   Source
	cache *gocache.Cache
}

func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:   src,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedSource) IsActive(ctx context.Context) (bool, error) {
	if val, found := c.cache.Get(activeKey); found {
		return val.(bool), nil
	}
	active, err := c.src.IsActive(ctx)
	if err != nil {
		return false, err
	}
	c.cache.SetDefault(activeKey, active)
	return active, nil
}

func (c *CachedSource) Score(ctx context.Context, identity common.Address) (*big.Int, error) {
	key := identity.Hex()
	if val, found := c.cache.Get(key); found {
		return new(big.Int).Set(val.(*big.Int)), nil
	}
	score, err := c.src.Score(ctx, identity)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, new(big.Int).Set(score))
	return score, nil
}

// Invalidate drops the cached score of identity.
func (c *CachedSource) Invalidate(identity common.Address) {
	c.cache.Delete(identity.Hex())
}

func (c *CachedSource) Flush() {
	c.cache.Flush()
}
