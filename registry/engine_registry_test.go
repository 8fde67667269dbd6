/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/datastore/mock"
	"github.com/suparena/settingstore/errors"
	"github.com/suparena/settingstore/registry"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

func TestOpenMemoryEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = mock.EngineName
	cfg.Redis.Prefix = "app"

	ds, err := registry.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer registry.Close(ds)

	m, ok := ds.(*mock.DataStore)
	if !ok {
		t.Fatalf("Open returned %T, want *mock.DataStore", ds)
	}
	m.Write(context.Background(), storagemodels.SystemID("k", "n", value.String), "v")
	if _, ok := m.GetData()["app:system:k"]; !ok {
		t.Errorf("configured prefix not applied: %v", m.GetData())
	}
}

func TestOpenUnknownEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = "etcd"

	_, err := registry.Open(context.Background(), cfg)
	if !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got: %v", err)
	}
}

func TestOpenWrapsFactoryError(t *testing.T) {
	boom := stderrors.New("dial tcp: refused")
	registry.RegisterEngine("failing", func(context.Context, *config.Config) (datastore.DataStore, error) {
		return nil, boom
	})

	cfg := config.Default()
	cfg.Engine = "failing"
	_, err := registry.Open(context.Background(), cfg)
	if !stderrors.Is(err, boom) {
		t.Fatalf("Expected wrapped factory error, got: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	f := func(context.Context, *config.Config) (datastore.DataStore, error) {
		return mock.New(), nil
	}
	if err := registry.Register("duplicate", f); err != nil {
		t.Fatalf("First Register failed: %v", err)
	}

	err := registry.Register("duplicate", f)
	if !errors.IsAlreadyExists(err) {
		t.Fatalf("Expected already exists error, got: %v", err)
	}
	var exists *errors.AlreadyExistsError
	if !stderrors.As(err, &exists) || exists.Key != "duplicate" || exists.Type != "engine" {
		t.Errorf("Unexpected error detail: %#v", err)
	}
}

func TestRegisterEngineDuplicatePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic on duplicate registration")
		}
		err, ok := r.(error)
		if !ok || !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected panic with already exists error, got: %v", r)
		}
	}()
	registry.RegisterEngine(mock.EngineName, func(context.Context, *config.Config) (datastore.DataStore, error) {
		return mock.New(), nil
	})
}

func TestEngines(t *testing.T) {
	names := registry.Engines()
	found := false
	for i, name := range names {
		if name == mock.EngineName {
			found = true
		}
		if i > 0 && names[i-1] > name {
			t.Errorf("Engines() not sorted: %v", names)
		}
	}
	if !found {
		t.Errorf("memory engine missing from %v", names)
	}
}
