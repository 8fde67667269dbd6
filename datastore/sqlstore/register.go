/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/registry"
)

// EngineName is the registry name of the relational engine.
const EngineName = "sql"

func init() {
	registry.RegisterEngine(EngineName, func(ctx context.Context, cfg *config.Config) (datastore.DataStore, error) {
		dialect, err := DialectFor(cfg.SQL.Driver)
		if err != nil {
			return nil, err
		}
		return Open(ctx, dialect, cfg.SQL.DSN)
	})
}
