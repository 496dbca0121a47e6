package headerchain

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DigestCache memoizes header digests keyed by the encoded header, so batches that overlap a
// previous submission are not hashed again.
type DigestCache struct {
	cache    *ttlcache.Cache[string, string]
	ttl      time.Duration
	stopOnce sync.Once
}

func NewDigestCache(ttl time.Duration, capacity uint64) *DigestCache {
	opts := []ttlcache.Option[string, string]{
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithDisableTouchOnHit[string, string](),
	}

	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, string](capacity))
	}

	c := &DigestCache{
		cache: ttlcache.New[string, string](opts...),
		ttl:   ttl,
	}

	go c.cache.Start()

	return c
}

func (c *DigestCache) Get(headerHex string) (string, bool) {
	item := c.cache.Get(headerHex)
	if item == nil {
		return "", false
	}

	return item.Value(), true
}

func (c *DigestCache) Set(headerHex, digestHex string) {
	c.cache.Set(headerHex, digestHex, c.ttl)
}

func (c *DigestCache) Len() int {
	return c.cache.Len()
}

// Stop ends the expiry loop. Later calls are no-ops.
func (c *DigestCache) Stop() {
	c.stopOnce.Do(c.cache.Stop)
}
