/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"sort"
	"strconv"
	"strings"

	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// DefaultDelimiter separates the parts of composite keys and fields.
const DefaultDelimiter = ":"

// DefaultPrefix is the namespace prefix of hash keys.
const DefaultPrefix = "registry"

// HashLayout composes the hash key and field names used by hash-style engines:
//
//	registry: prefix:registry:<owner>:<key>   field <name>:<type>
//	system:   prefix:system:<key>             field <name>:<type>
//
// The type is part of the field, so settings that differ only by type coexist.
type HashLayout struct {
	Prefix    string
	Delimiter string
}

// NewHashLayout returns a layout, substituting defaults for empty arguments.
func NewHashLayout(prefix, delimiter string) HashLayout {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return HashLayout{Prefix: prefix, Delimiter: delimiter}
}

// ScopePrefix is the common prefix of every hash key in scope.
func (l HashLayout) ScopePrefix(scope storagemodels.Scope) string {
	return l.Prefix + l.Delimiter + string(scope) + l.Delimiter
}

// Key returns the hash key holding id.
func (l HashLayout) Key(id storagemodels.Identity) string {
	if id.Scope == storagemodels.ScopeSystem {
		return l.ScopePrefix(storagemodels.ScopeSystem) + id.Key
	}
	return l.ScopePrefix(storagemodels.ScopeRegistry) + strconv.FormatInt(id.Owner, 10) + l.Delimiter + id.Key
}

// Field returns the hash field holding id.
func (l HashLayout) Field(id storagemodels.Identity) string {
	return id.Name + l.Delimiter + string(id.Type)
}

// ParseKey splits a hash key back into owner and setting key.
// The setting key may itself contain the delimiter.
func (l HashLayout) ParseKey(scope storagemodels.Scope, hashKey string) (owner int64, key string, ok bool) {
	rest, found := strings.CutPrefix(hashKey, l.ScopePrefix(scope))
	if !found {
		return 0, "", false
	}
	if scope == storagemodels.ScopeSystem {
		return 0, rest, true
	}
	ownerPart, key, found := strings.Cut(rest, l.Delimiter)
	if !found {
		return 0, "", false
	}
	owner, err := strconv.ParseInt(ownerPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return owner, key, true
}

// ParseField splits a hash field into name and type.
func (l HashLayout) ParseField(field string) (name string, typ value.Type, ok bool) {
	i := strings.LastIndex(field, l.Delimiter)
	if i < 0 {
		return "", "", false
	}
	return field[:i], value.Type(field[i+len(l.Delimiter):]), true
}

// Entry rebuilds a stored entry from its hash key, field and raw value.
func (l HashLayout) Entry(scope storagemodels.Scope, hashKey, field, raw string) (storagemodels.Entry, bool) {
	owner, key, ok := l.ParseKey(scope, hashKey)
	if !ok {
		return storagemodels.Entry{}, false
	}
	name, typ, ok := l.ParseField(field)
	if !ok {
		return storagemodels.Entry{}, false
	}
	return storagemodels.Entry{
		Scope: scope,
		Owner: owner,
		Key:   key,
		Name:  name,
		Type:  typ,
		Value: raw,
	}, true
}

// SortEntries orders entries by owner, key, name and type.
func SortEntries(entries []storagemodels.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Type < b.Type
	})
}
