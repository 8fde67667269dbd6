/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/datastore/traced"
	"github.com/suparena/settingstore/errors"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// Registry is the typed settings store. It normalizes types, encodes and decodes
// values, applies the owner 0 fallback and resolves defaults on top of a DataStore.
//
// A Registry holds no mutable state and is safe for concurrent use when its
// DataStore is. Note that ReadOnce and the collapse check in Write each issue two
// separate engine calls without a transaction; see their documentation.
type Registry struct {
	ds        datastore.DataStore
	delimiter string
	defaults  DefaultTable
	logger    *slog.Logger
}

var _ Store = (*Registry)(nil)

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	delimiter    string
	defaultsPath string
	defaults     DefaultTable
	logger       *slog.Logger
	traceOpts    []traced.Option
}

// WithDelimiter sets the separator between key and name. Default ":".
// It must match the delimiter the DataStore layout was built with.
func WithDelimiter(d string) Option {
	return func(o *registryOptions) { o.delimiter = d }
}

// WithDefaultValues loads the static default table from a YAML file.
// A path that does not exist is ignored.
func WithDefaultValues(path string) Option {
	return func(o *registryOptions) { o.defaultsPath = path }
}

// WithDefaultTable uses an already built default table.
func WithDefaultTable(t DefaultTable) Option {
	return func(o *registryOptions) { o.defaults = t }
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *registryOptions) { o.logger = l }
}

// New creates a Registry over ds.
func New(ds datastore.DataStore, opts ...Option) (*Registry, error) {
	if ds == nil {
		return nil, errors.NewValidationError("datastore", "must not be nil")
	}

	o := registryOptions{delimiter: datastore.DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}
	if o.delimiter == "" {
		return nil, errors.NewValidationError("delimiter", "must not be empty")
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	defaults := o.defaults
	if defaults == nil && o.defaultsPath != "" {
		t, err := LoadDefaultTable(o.defaultsPath)
		if err != nil {
			return nil, err
		}
		if t != nil {
			o.logger.Debug("loaded default values", "path", o.defaultsPath, "entries", t.Len())
		}
		defaults = t
	}

	return &Registry{
		ds:        ds,
		delimiter: o.delimiter,
		defaults:  defaults,
		logger:    o.logger,
	}, nil
}

// DataStore returns the engine the Registry runs on.
func (r *Registry) DataStore() datastore.DataStore {
	return r.ds
}

// Delimiter returns the configured delimiter.
func (r *Registry) Delimiter() string {
	return r.delimiter
}

// Registry scope

// RegistryExists reports whether owner has its own value. Owner 0 is not consulted.
func (r *Registry) RegistryExists(ctx context.Context, owner int64, key, name, typ string) (bool, error) {
	return r.exists(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)))
}

// RegistryDelete removes the value of owner and reports whether one was removed.
// Owner 0 is not touched.
func (r *Registry) RegistryDelete(ctx context.Context, owner int64, key, name, typ string) (bool, error) {
	return r.delete(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)))
}

// RegistryReadDefault returns the value of owner, else the value of owner 0,
// else def coerced to typ. A nil def yields Null.
func (r *Registry) RegistryReadDefault(ctx context.Context, owner int64, key, name, typ string, def any) (value.Value, error) {
	return r.readDefault(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)), def)
}

// RegistryRead is RegistryReadDefault without a default, falling back to the
// default table.
func (r *Registry) RegistryRead(ctx context.Context, owner int64, key, name, typ string) (value.Value, error) {
	return r.read(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)))
}

// RegistryReadOnce reads the value, then deletes the owner's entry whether or
// not anything was found. The two steps are not atomic: concurrent callers can
// both observe the value before either delete lands.
func (r *Registry) RegistryReadOnce(ctx context.Context, owner int64, key, name, typ string) (value.Value, error) {
	return r.readOnce(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)))
}

// RegistryWrite stores v for owner. If owner is not 0 and v equals the current
// owner 0 value, the owner's entry is deleted instead and the delete result is
// returned. The owner 0 read and the following write or delete are separate
// engine calls, so a concurrent change to owner 0 can be missed.
func (r *Registry) RegistryWrite(ctx context.Context, owner int64, key, name, typ string, v any) (bool, error) {
	return r.write(ctx, storagemodels.RegistryID(owner, key, name, value.Normalize(typ)), v)
}

// RegistryAll returns every stored registry entry, undecoded.
func (r *Registry) RegistryAll(ctx context.Context) ([]storagemodels.Entry, error) {
	return r.all(ctx, storagemodels.ScopeRegistry)
}

// System scope

// SystemExists reports whether the system setting is stored.
func (r *Registry) SystemExists(ctx context.Context, key, name, typ string) (bool, error) {
	return r.exists(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)))
}

// SystemDelete removes the system setting and reports whether it existed.
func (r *Registry) SystemDelete(ctx context.Context, key, name, typ string) (bool, error) {
	return r.delete(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)))
}

// SystemReadDefault reads the system setting, returning def when it is missing.
func (r *Registry) SystemReadDefault(ctx context.Context, key, name, typ string, def any) (value.Value, error) {
	return r.readDefault(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)), def)
}

// SystemRead reads the system setting, falling back to the default table.
func (r *Registry) SystemRead(ctx context.Context, key, name, typ string) (value.Value, error) {
	return r.read(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)))
}

// SystemReadOnce reads then deletes, with the same race as RegistryReadOnce.
func (r *Registry) SystemReadOnce(ctx context.Context, key, name, typ string) (value.Value, error) {
	return r.readOnce(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)))
}

// SystemWrite stores v as the system setting. The name must not contain the delimiter.
func (r *Registry) SystemWrite(ctx context.Context, key, name, typ string, v any) (bool, error) {
	return r.write(ctx, storagemodels.SystemID(key, name, value.Normalize(typ)), v)
}

// SystemAll returns every stored system entry, undecoded.
func (r *Registry) SystemAll(ctx context.Context) ([]storagemodels.Entry, error) {
	return r.all(ctx, storagemodels.ScopeSystem)
}

// Scope-independent operations. id.Type is already normalized.

func (r *Registry) exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	ok, err := r.ds.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", id, err)
	}
	return ok, nil
}

func (r *Registry) delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	ok, err := r.ds.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", id, err)
	}
	return ok, nil
}

func (r *Registry) readDefault(ctx context.Context, id storagemodels.Identity, def any) (value.Value, error) {
	raw, found, err := r.ds.Read(ctx, id)
	if err != nil {
		return value.Null(), fmt.Errorf("read %s: %w", id, err)
	}

	if !found && id.Scope == storagemodels.ScopeRegistry && id.Owner != 0 {
		fallback := id.WithOwner(0)
		raw, found, err = r.ds.Read(ctx, fallback)
		if err != nil {
			return value.Null(), fmt.Errorf("read %s: %w", fallback, err)
		}
	}

	if found {
		return value.Decode(id.Type, raw), nil
	}
	return value.Coerce(id.Type, def), nil
}

func (r *Registry) read(ctx context.Context, id storagemodels.Identity) (value.Value, error) {
	v, err := r.readDefault(ctx, id, nil)
	if err != nil || !v.IsNull() || r.defaults == nil {
		return v, err
	}

	def, ok := r.defaults.Lookup(id.Scope, id.Key, id.Name, r.delimiter)
	if !ok {
		return v, nil
	}
	if s, isString := def.(string); isString {
		return value.Decode(id.Type, s), nil
	}
	return value.Coerce(id.Type, def), nil
}

// readOnce returns the read value even when the delete fails, together with
// the delete error.
func (r *Registry) readOnce(ctx context.Context, id storagemodels.Identity) (value.Value, error) {
	v, err := r.read(ctx, id)
	if err != nil {
		return value.Null(), err
	}

	deleted, err := r.delete(ctx, id)
	if err != nil {
		return v, err
	}
	if deleted {
		r.logger.Debug("consumed read-once setting", "setting", id.String())
	}
	return v, nil
}

func (r *Registry) write(ctx context.Context, id storagemodels.Identity, v any) (bool, error) {
	if strings.Contains(id.Name, r.delimiter) {
		return false, errors.NewValidationError("name",
			fmt.Sprintf("delimiter %q is not allowed in name %q", r.delimiter, id.Name))
	}
	// A key containing the delimiter is accepted: the hash layout splits the
	// owner off the front, and the relational engine stores key as a column.

	if id.Scope == storagemodels.ScopeRegistry && id.Owner != 0 {
		current, err := r.read(ctx, id.WithOwner(0))
		if err != nil {
			return false, err
		}
		if !current.IsEmpty() && current.Equal(value.Of(id.Type, v)) {
			r.logger.Debug("collapsing setting onto owner 0 value", "setting", id.String())
			return r.delete(ctx, id)
		}
	}

	raw, err := value.Encode(id.Type, v)
	if err != nil {
		return false, errors.NewValidationError("value", err.Error())
	}

	ok, err := r.ds.Write(ctx, id, raw)
	if err != nil {
		return false, fmt.Errorf("write %s: %w", id, err)
	}
	return ok, nil
}

func (r *Registry) all(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	entries, err := r.ds.All(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", scope, err)
	}
	return entries, nil
}
