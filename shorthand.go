/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore

import (
	"context"

	"github.com/suparena/settingstore/value"
)

// Two-letter shorthands. Each one calls the long-form method with the same
// arguments and returns its result unchanged.

func (r *Registry) Re(ctx context.Context, owner int64, k, n, t string) (bool, error) {
	return r.RegistryExists(ctx, owner, k, n, t)
}

func (r *Registry) Rd(ctx context.Context, owner int64, k, n, t string) (bool, error) {
	return r.RegistryDelete(ctx, owner, k, n, t)
}

func (r *Registry) Rrd(ctx context.Context, owner int64, k, n, t string, def any) (value.Value, error) {
	return r.RegistryReadDefault(ctx, owner, k, n, t, def)
}

func (r *Registry) Rr(ctx context.Context, owner int64, k, n, t string) (value.Value, error) {
	return r.RegistryRead(ctx, owner, k, n, t)
}

func (r *Registry) Rro(ctx context.Context, owner int64, k, n, t string) (value.Value, error) {
	return r.RegistryReadOnce(ctx, owner, k, n, t)
}

func (r *Registry) Rw(ctx context.Context, owner int64, k, n, t string, v any) (bool, error) {
	return r.RegistryWrite(ctx, owner, k, n, t, v)
}

func (r *Registry) Se(ctx context.Context, k, n, t string) (bool, error) {
	return r.SystemExists(ctx, k, n, t)
}

func (r *Registry) Sd(ctx context.Context, k, n, t string) (bool, error) {
	return r.SystemDelete(ctx, k, n, t)
}

func (r *Registry) Srd(ctx context.Context, k, n, t string, def any) (value.Value, error) {
	return r.SystemReadDefault(ctx, k, n, t, def)
}

func (r *Registry) Sr(ctx context.Context, k, n, t string) (value.Value, error) {
	return r.SystemRead(ctx, k, n, t)
}

func (r *Registry) Sro(ctx context.Context, k, n, t string) (value.Value, error) {
	return r.SystemReadOnce(ctx, k, n, t)
}

func (r *Registry) Sw(ctx context.Context, k, n, t string, v any) (bool, error) {
	return r.SystemWrite(ctx, k, n, t, v)
}
