/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cached wraps a DataStore with a read-through TTL cache.
package cached

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

type readResult struct {
	raw   string
	found bool
}

// DataStore caches Read results, including misses, for a fixed TTL.
// Writes and deletes through it evict the setting under every type, since some
// engines ignore the type on Read and Write. A Read that overlaps a write or
// delete through the same DataStore returns the engine result but does not
// cache it. Changes made by other processes become visible once the TTL expires.
type DataStore struct {
	next  datastore.DataStore
	cache *ttlcache.Cache[storagemodels.Identity, readResult]

	// gens counts evictions per identity, guarded by mu.
	mu   sync.Mutex
	gens map[storagemodels.Identity]uint64
}

var _ datastore.DataStore = (*DataStore)(nil)

// New wraps next with a cache whose entries live for ttl.
func New(next datastore.DataStore, ttl time.Duration) *DataStore {
	cache := ttlcache.New(
		ttlcache.WithTTL[storagemodels.Identity, readResult](ttl),
		ttlcache.WithDisableTouchOnHit[storagemodels.Identity, readResult](),
	)
	go cache.Start()
	return &DataStore{
		next:  next,
		cache: cache,
		gens:  make(map[storagemodels.Identity]uint64),
	}
}

// Unwrap returns the underlying DataStore.
func (c *DataStore) Unwrap() datastore.DataStore {
	return c.next
}

func (c *DataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	return c.next.Exists(ctx, id)
}

func (c *DataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	defer c.evict(id)
	return c.next.Delete(ctx, id)
}

func (c *DataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	key := normalize(id)
	if item := c.cache.Get(key); item != nil {
		v := item.Value()
		return v.raw, v.found, nil
	}

	c.mu.Lock()
	gen := c.gens[key]
	c.mu.Unlock()

	raw, found, err := c.next.Read(ctx, id)
	if err != nil {
		return "", false, err
	}

	c.mu.Lock()
	if c.gens[key] == gen {
		c.cache.Set(key, readResult{raw: raw, found: found}, ttlcache.DefaultTTL)
	}
	c.mu.Unlock()
	return raw, found, nil
}

func (c *DataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	defer c.evict(id)
	return c.next.Write(ctx, id, raw)
}

func (c *DataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	return c.next.All(ctx, scope)
}

// Len returns the number of cached reads.
func (c *DataStore) Len() int {
	return c.cache.Len()
}

// Close stops the expiry loop and closes the underlying store if it holds resources.
func (c *DataStore) Close() error {
	c.cache.Stop()
	if closer, ok := c.next.(datastore.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *DataStore) evict(id storagemodels.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range value.Types {
		typed := id
		typed.Type = t
		key := normalize(typed)
		c.gens[key]++
		c.cache.Delete(key)
	}
}

// normalize drops the owner of system identities so equal settings share a key.
func normalize(id storagemodels.Identity) storagemodels.Identity {
	if id.Scope == storagemodels.ScopeSystem {
		id.Owner = 0
	}
	return id
}
