/*
Package registry maps engine names to DataStore factories.

Engine packages register themselves from init(), so a program selects the engines
it supports with blank imports:

	import (
	    _ "github.com/suparena/settingstore/datastore/redis"
	    _ "github.com/suparena/settingstore/datastore/sqlstore"
	)

	ds, err := registry.Open(ctx, cfg) // cfg.Engine == "redis"

Registered names: "memory", "redis", "sql" and "dynamodb".

Registering the same name twice panics. The registry is thread-safe and should be
populated during initialization.
*/
package registry
