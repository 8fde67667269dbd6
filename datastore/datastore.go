/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/settingstore/storagemodels"
)

// DataStore is the storage engine contract consumed by the settings registry.
// Values cross it as strings; typing is the registry's concern.
//
// A missing setting is a normal outcome: Read reports it with found == false and
// Exists/Delete with false. The error return is reserved for engine failures.
type DataStore interface {
	Exists(ctx context.Context, id storagemodels.Identity) (bool, error)

	// Delete reports whether an entry was actually removed.
	Delete(ctx context.Context, id storagemodels.Identity) (bool, error)

	Read(ctx context.Context, id storagemodels.Identity) (raw string, found bool, err error)

	Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error)

	// All scans a whole scope. It is meant for administrative listings.
	All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error)
}

// Closer is implemented by DataStores that hold connections.
type Closer interface {
	Close() error
}
