package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("key not found")

// KV is the persisted state layout: independent JSON documents under fixed string keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Collection is a JSON array stored under a single key.
// Reads never fail: a missing, unreadable or corrupt document yields an empty collection.
// Writes that fail are logged and dropped.
type Collection[T any] struct {
	kv  KV
	key string
	mu  sync.Mutex
}

func NewCollection[T any](kv KV, key string) *Collection[T] {
	return &Collection[T]{
		kv:  kv,
		key: key,
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) []T {
	return load[[]T](ctx, c.kv, c.key, func() []T { return []T{} })
}

func (c *Collection[T]) Save(ctx context.Context, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	save(ctx, c.kv, c.key, items)
}

// Mutate runs a read-modify-write cycle under the collection lock.
// fn returns the new items and whether they should be written back.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool)) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, changed := fn(c.Load(ctx))
	if changed {
		save(ctx, c.kv, c.key, items)
	}
	return items
}

// Singleton is a single JSON object stored under a key.
type Singleton[T any] struct {
	kv  KV
	key string
}

func NewSingleton[T any](kv KV, key string) *Singleton[T] {
	return &Singleton[T]{
		kv:  kv,
		key: key,
	}
}

// Load returns nil when nothing is stored or the document is corrupt.
func (s *Singleton[T]) Load(ctx context.Context) *T {
	return load[*T](ctx, s.kv, s.key, func() *T { return nil })
}

func (s *Singleton[T]) Save(ctx context.Context, v *T) {
	save(ctx, s.kv, s.key, v)
}

func (s *Singleton[T]) Clear(ctx context.Context) {
	if err := s.kv.Del(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		log.Errorf("store: clear [%s]: %s", s.key, err)
	}
}

func load[T any](ctx context.Context, kv KV, key string, empty func() T) T {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("store: read [%s]: %s", key, err)
		}
		return empty()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warnf("store: parse [%s]: %s", key, err)
		return empty()
	}
	return v
}

func save(ctx context.Context, kv KV, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("store: marshal [%s]: %s", key, err)
		return
	}
	if err := kv.Set(ctx, key, data); err != nil {
		log.Errorf("store: write [%s]: %s", key, err)
	}
}
