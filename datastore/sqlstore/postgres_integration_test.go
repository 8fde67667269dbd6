//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

func TestPostgresIntegration(t *testing.T) {
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, Postgres, dsn)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer store.Close()

	id := storagemodels.RegistryID(987654321, "integration", "greeting", value.String)
	defer store.Delete(ctx, id)

	if _, err := store.Write(ctx, id, "hello"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := store.Write(ctx, id, "hello again"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	raw, found, err := store.Read(ctx, id)
	if err != nil || !found || raw != "hello again" {
		t.Fatalf("Read = %q, %v, %v", raw, found, err)
	}
	exists, err := store.Exists(ctx, id)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
}
