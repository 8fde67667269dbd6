/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package redis stores settings in Redis hashes.
//
// Every (owner, key) pair of the registry scope, and every key of the system
// scope, is one hash. Its fields are "<name><delimiter><type>".
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
)

// DataStore is a Redis implementation of datastore.DataStore.
type DataStore struct {
	client   goredis.UniversalClient
	layout   datastore.HashLayout
	scanSize int64
	owned    bool
}

var _ datastore.DataStore = (*DataStore)(nil)

// Option configures a DataStore.
type Option func(*DataStore)

// WithScanCount sets the COUNT hint used when scanning keys.
func WithScanCount(n int64) Option {
	return func(d *DataStore) {
		if n > 0 {
			d.scanSize = n
		}
	}
}

// New wraps an existing client. The caller keeps ownership of it.
func New(client goredis.UniversalClient, layout datastore.HashLayout, opts ...Option) *DataStore {
	d := &DataStore{
		client:   client,
		layout:   layout,
		scanSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial connects to addr and verifies the connection. Close releases the client.
func Dial(ctx context.Context, opts *goredis.Options, layout datastore.HashLayout) (*DataStore, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	d := New(client, layout)
	d.owned = true
	return d, nil
}

func (d *DataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	ok, err := d.client.HExists(ctx, d.layout.Key(id), d.layout.Field(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", id, err)
	}
	return ok, nil
}

func (d *DataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	n, err := d.client.HDel(ctx, d.layout.Key(id), d.layout.Field(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis delete %s: %w", id, err)
	}
	return n > 0, nil
}

func (d *DataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	raw, err := d.client.HGet(ctx, d.layout.Key(id), d.layout.Field(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis read %s: %w", id, err)
	}
	return raw, true, nil
}

// Write sets the field. HSET reports 0 when it replaces an existing field,
// which is still a successful write.
func (d *DataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	if err := d.client.HSet(ctx, d.layout.Key(id), d.layout.Field(id), raw).Err(); err != nil {
		return false, fmt.Errorf("redis write %s: %w", id, err)
	}
	return true, nil
}

// All scans the keys of scope with SCAN and reads each hash.
// Keys and fields that do not fit the layout are skipped.
func (d *DataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	match := escapePattern(d.layout.ScopePrefix(scope)) + "*"

	var entries []storagemodels.Entry
	iter := d.client.Scan(ctx, 0, match, d.scanSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := d.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis hgetall %s: %w", key, err)
		}
		for field, raw := range fields {
			if e, ok := d.layout.Entry(scope, key, field, raw); ok {
				entries = append(entries, e)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", match, err)
	}

	datastore.SortEntries(entries)
	return entries, nil
}

// Close closes the client if Dial created it.
func (d *DataStore) Close() error {
	if d.owned {
		return d.client.Close()
	}
	return nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapePattern quotes glob metacharacters for SCAN MATCH.
func escapePattern(s string) string {
	return globEscaper.Replace(s)
}
