/*
Package datastore defines the storage engine contract of the settings store.

The main interface is DataStore, which moves raw strings in and out of storage:

	type DataStore interface {
	    Exists(ctx context.Context, id storagemodels.Identity) (bool, error)
	    Delete(ctx context.Context, id storagemodels.Identity) (bool, error)
	    Read(ctx context.Context, id storagemodels.Identity) (string, bool, error)
	    Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error)
	    All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error)
	}

Implementations:
  - mock: in-memory engine with fault injection, also registered as "memory"
  - redis: Redis hashes
  - ddb: DynamoDB, using the same key layout as redis (PK = hash key, SK = field)
  - sqlstore: relational tables over database/sql (SQLite or PostgreSQL)

Decorators:
  - cached: read-through TTL cache
  - traced: OpenTelemetry spans around every call

Engines do not agree on identity. The hash-style engines (mock, redis, ddb) keep the
type in the field name, so "i" and "s" settings with the same name coexist. The
relational engine keys rows by (owner, key, name) and ignores the type on Read and
Write, while Exists and Delete still match on it. Callers that switch engines must
not rely on either behavior.
*/
package datastore
