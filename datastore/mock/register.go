/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/registry"
)

// EngineName is the registry name of the in-memory engine.
const EngineName = "memory"

func init() {
	registry.RegisterEngine(EngineName, func(_ context.Context, cfg *config.Config) (datastore.DataStore, error) {
		return New().WithLayout(datastore.NewHashLayout(cfg.Redis.Prefix, cfg.Delimiter)), nil
	})
}
