/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore

import (
	"context"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore/cached"
	"github.com/suparena/settingstore/datastore/traced"
	"github.com/suparena/settingstore/registry"
)

// WithTraceOptions passes options to the tracing decorator Open installs when
// cfg.Tracing.Enabled is set.
func WithTraceOptions(opts ...traced.Option) Option {
	return func(o *registryOptions) { o.traceOpts = append(o.traceOpts, opts...) }
}

// Open builds the engine named by cfg.Engine and returns a Registry over it.
// The engine package must be imported for its side effects, as with
// database/sql drivers:
//
//	import _ "github.com/suparena/settingstore/datastore/redis"
//
// A positive cfg.Cache.TTL adds a read-through cache, and cfg.Tracing.Enabled
// wraps everything in spans. The delimiter and default values path come from
// cfg unless opts override them. A WithDelimiter option also reaches the
// engine layout, so keys and fields split the same way. cfg is not modified.
// Close the Registry to release the engine.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Registry, error) {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := *cfg
	if o.delimiter != "" {
		c.Delimiter = o.delimiter
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ds, err := registry.Open(ctx, &c)
	if err != nil {
		return nil, err
	}

	if c.Cache.TTL > 0 {
		ds = cached.New(ds, c.Cache.TTL)
	}
	if c.Tracing.Enabled {
		ds = traced.New(ds, c.Engine, o.traceOpts...)
	}

	base := []Option{WithDelimiter(c.Delimiter)}
	if c.DefaultValues != "" {
		base = append(base, WithDefaultValues(c.DefaultValues))
	}
	r, err := New(ds, append(base, opts...)...)
	if err != nil {
		_ = registry.Close(ds)
		return nil, err
	}
	return r, nil
}

// Close releases the engine if it holds resources.
func (r *Registry) Close() error {
	return registry.Close(r.ds)
}
