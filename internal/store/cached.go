package store

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// Cached is a read-through cache in front of another KV.
// Entries are refreshed on write and dropped on delete.
type Cached struct {
	next       KV
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCached(next KV, sizeMB, ttlSeconds int) *Cached {
	return &Cached{
		next:       next,
		cache:      freecache.NewCache(sizeMB * 1024 * 1024),
		ttlSeconds: ttlSeconds,
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if v, err := c.cache.Get([]byte(key)); err == nil {
		return v, nil
	}

	v, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.put(key, v)
	return v, nil
}

func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := c.next.Set(ctx, key, value); err != nil {
		c.cache.Del([]byte(key))
		return err
	}
	c.put(key, value)
	return nil
}

func (c *Cached) Del(ctx context.Context, key string) error {
	c.cache.Del([]byte(key))
	return c.next.Del(ctx, key)
}

func (c *Cached) Keys(ctx context.Context, prefix string) ([]string, error) {
	return c.next.Keys(ctx, prefix)
}

func (c *Cached) HitRate() float64 {
	return c.cache.HitRate()
}

func (c *Cached) put(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttlSeconds); err != nil {
		// too large for the cache, served from the backing store
		if !errors.Is(err, freecache.ErrLargeEntry) {
			log.Warnf("store cache: set [%s]: %s", key, err)
		}
		c.cache.Del([]byte(key))
	}
}
