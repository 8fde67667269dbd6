/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory DataStore for tests and single-process use.
package mock

import (
	"context"
	"sync"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
)

// DataStore is an in-memory implementation of datastore.DataStore.
// It uses the hash layout, so the type is part of every identity.
type DataStore struct {
	mu     sync.RWMutex
	layout datastore.HashLayout
	data   map[string]map[string]string // hash key -> field -> raw

	readHook    func(id storagemodels.Identity)
	existsError error
	readError   error
	writeError  error
	deleteError error
	allError    error
}

var _ datastore.DataStore = (*DataStore)(nil)

// New creates an empty mock DataStore using the default key layout.
func New() *DataStore {
	return &DataStore{
		layout: datastore.NewHashLayout(datastore.DefaultPrefix, datastore.DefaultDelimiter),
		data:   make(map[string]map[string]string),
	}
}

// WithLayout replaces the key layout. Call it before storing anything.
func (m *DataStore) WithLayout(l datastore.HashLayout) *DataStore {
	m.layout = l
	return m
}

// WithReadHook registers f to run after every successful Read, outside the lock.
// Tests use it to interleave writes with multi-step operations.
func (m *DataStore) WithReadHook(f func(id storagemodels.Identity)) *DataStore {
	m.readHook = f
	return m
}

// WithExistsError makes Exists operations return an error
func (m *DataStore) WithExistsError(err error) *DataStore {
	m.existsError = err
	return m
}

// WithReadError makes Read operations return an error
func (m *DataStore) WithReadError(err error) *DataStore {
	m.readError = err
	return m
}

// WithWriteError makes Write operations return an error
func (m *DataStore) WithWriteError(err error) *DataStore {
	m.writeError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// WithAllError makes All operations return an error
func (m *DataStore) WithAllError(err error) *DataStore {
	m.allError = err
	return m
}

// Exists reports whether id is stored.
func (m *DataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[m.layout.Key(id)][m.layout.Field(id)]
	return ok, nil
}

// Delete removes id and reports whether it was present.
func (m *DataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	if m.deleteError != nil {
		return false, m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.layout.Key(id)
	fields, ok := m.data[key]
	if !ok {
		return false, nil
	}
	field := m.layout.Field(id)
	if _, ok := fields[field]; !ok {
		return false, nil
	}
	delete(fields, field)
	if len(fields) == 0 {
		delete(m.data, key)
	}
	return true, nil
}

// Read returns the raw value stored for id.
func (m *DataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	if m.readError != nil {
		return "", false, m.readError
	}

	m.mu.RLock()
	raw, ok := m.data[m.layout.Key(id)][m.layout.Field(id)]
	m.mu.RUnlock()

	if ok && m.readHook != nil {
		m.readHook(id)
	}
	return raw, ok, nil
}

// Write stores raw under id, replacing any previous value.
func (m *DataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	if m.writeError != nil {
		return false, m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.layout.Key(id)
	fields, ok := m.data[key]
	if !ok {
		fields = make(map[string]string)
		m.data[key] = fields
	}
	fields[m.layout.Field(id)] = raw
	return true, nil
}

// All returns every entry of scope, ordered by owner, key, name and type.
func (m *DataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	if m.allError != nil {
		return nil, m.allError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []storagemodels.Entry
	for key, fields := range m.data {
		for field, raw := range fields {
			if e, ok := m.layout.Entry(scope, key, field, raw); ok {
				entries = append(entries, e)
			}
		}
	}
	datastore.SortEntries(entries)
	return entries, nil
}

// Helper methods for testing

// GetData returns a copy of the stored hashes (for testing)
func (m *DataStore) GetData() map[string]map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]map[string]string, len(m.data))
	for k, fields := range m.data {
		cp := make(map[string]string, len(fields))
		for f, v := range fields {
			cp[f] = v
		}
		result[k] = cp
	}
	return result
}

// Count returns the number of stored settings
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, fields := range m.data {
		n += len(fields)
	}
	return n
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]string)
}
