/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/registry"
)

// EngineName is the registry name of the Redis engine.
const EngineName = "redis"

func init() {
	registry.RegisterEngine(EngineName, func(ctx context.Context, cfg *config.Config) (datastore.DataStore, error) {
		return Dial(ctx, &goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, datastore.NewHashLayout(cfg.Redis.Prefix, cfg.Delimiter))
	})
}
