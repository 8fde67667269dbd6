/*
Package settingstore provides a typed, namespaced key-value settings store with
two independent scopes: per-user settings ("registry") and global settings
("system"), over a pluggable storage engine.

Every setting is addressed by a key, a name and a single-letter type code:

	i  integer
	b  boolean
	s  string (also used for unknown codes)
	f  float
	d  date, returned as a Unix timestamp
	t  time, handled like d

Aliases such as "int", "bln" or "float" are accepted and normalized.

Owner 0 holds the default for every user. Reads for another owner fall back to
owner 0, then to the caller's default or the static default table. Writing a
value equal to the owner 0 value removes the user's own entry instead of
storing a duplicate. Exists and Delete never consult owner 0.

Basic Usage:

	import (
	    "github.com/suparena/settingstore"
	    "github.com/suparena/settingstore/datastore/mock"
	)

	reg, _ := settingstore.New(mock.New())

	reg.RegistryWrite(ctx, 0, "settings", "language", "s", "en")
	v, _ := reg.RegistryRead(ctx, 42, "settings", "language", "s") // "en"

	reg.Sw(ctx, "mail", "retries", "i", 3)
	n, _ := reg.Sr(ctx, "mail", "retries", "int")

With configuration, Open selects a registered engine by name:

	import _ "github.com/suparena/settingstore/datastore/redis"

	cfg, _ := config.Load("")
	reg, err := settingstore.Open(ctx, cfg)
	defer reg.Close()

Read-once and the collapse check on write each issue two engine calls with no
transaction around them. Concurrent callers on the same setting can observe
each other's intermediate state.
*/
package settingstore
