/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/errors"
)

// Factory builds a DataStore from configuration.
type Factory func(ctx context.Context, cfg *config.Config) (datastore.DataStore, error)

var (
	engines = make(map[string]Factory)
	mu      sync.RWMutex
)

// Register registers a factory under name. It returns an AlreadyExistsError
// if the name is taken.
func Register(name string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := engines[name]; exists {
		return errors.NewAlreadyExistsError("engine", name)
	}
	engines[name] = f
	return nil
}

// RegisterEngine is Register for init functions: it panics with the
// AlreadyExistsError when the name is taken.
func RegisterEngine(name string, f Factory) {
	if err := Register(name, f); err != nil {
		panic(err)
	}
}

// GetFactory returns the factory registered under name.
func GetFactory(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := engines[name]
	if !ok {
		return nil, errors.NewNotFoundError("engine", name)
	}
	return f, nil
}

// Engines returns the registered engine names, sorted.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the engine named by cfg.Engine.
func Open(ctx context.Context, cfg *config.Config) (datastore.DataStore, error) {
	f, err := GetFactory(cfg.Engine)
	if err != nil {
		return nil, err
	}
	ds, err := f(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s engine: %w", cfg.Engine, err)
	}
	return ds, nil
}

// Close releases ds if it holds resources.
func Close(ds datastore.DataStore) error {
	if c, ok := ds.(datastore.Closer); ok {
		return c.Close()
	}
	return nil
}
