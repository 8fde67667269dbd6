/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore

import (
	"context"

	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// Store is the settings API host applications depend on. *Registry implements it.
type Store interface {
	RegistryExists(ctx context.Context, owner int64, key, name, typ string) (bool, error)
	RegistryDelete(ctx context.Context, owner int64, key, name, typ string) (bool, error)
	RegistryReadDefault(ctx context.Context, owner int64, key, name, typ string, def any) (value.Value, error)
	RegistryRead(ctx context.Context, owner int64, key, name, typ string) (value.Value, error)
	RegistryReadOnce(ctx context.Context, owner int64, key, name, typ string) (value.Value, error)
	RegistryWrite(ctx context.Context, owner int64, key, name, typ string, v any) (bool, error)
	RegistryAll(ctx context.Context) ([]storagemodels.Entry, error)

	SystemExists(ctx context.Context, key, name, typ string) (bool, error)
	SystemDelete(ctx context.Context, key, name, typ string) (bool, error)
	SystemReadDefault(ctx context.Context, key, name, typ string, def any) (value.Value, error)
	SystemRead(ctx context.Context, key, name, typ string) (value.Value, error)
	SystemReadOnce(ctx context.Context, key, name, typ string) (value.Value, error)
	SystemWrite(ctx context.Context, key, name, typ string, v any) (bool, error)
	SystemAll(ctx context.Context) ([]storagemodels.Entry, error)
}
