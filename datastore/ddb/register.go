/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/registry"
)

func init() {
	registry.RegisterEngine(EngineName, func(ctx context.Context, cfg *config.Config) (datastore.DataStore, error) {
		client, err := NewDynamoDBClient(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		layout := datastore.NewHashLayout(cfg.DynamoDB.Prefix, cfg.Delimiter)
		return NewDynamodbDataStore(client, cfg.DynamoDB.Table, layout), nil
	})
}
