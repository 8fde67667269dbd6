//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/suparena/settingstore"
	"github.com/suparena/settingstore/config"
	_ "github.com/suparena/settingstore/datastore/redis"
	"github.com/suparena/settingstore/value"
)

func TestRegistryIntegrationRedis(t *testing.T) {
	_ = godotenv.Load()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping integration test: REDIS_ADDR not set")
	}

	ctx := context.Background()
	cfg := config.Default()
	cfg.Engine = "redis"
	cfg.Redis.Addr = addr
	cfg.Redis.Prefix = fmt.Sprintf("it%d", time.Now().UnixNano())

	reg, err := settingstore.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reg.Close()

	t.Run("FallbackAndCollapse", func(t *testing.T) {
		defer reg.RegistryDelete(ctx, 0, "limits", "max", "i")
		defer reg.RegistryDelete(ctx, 1, "limits", "max", "i")

		reg.RegistryWrite(ctx, 0, "limits", "max", "i", 10)
		reg.RegistryWrite(ctx, 1, "limits", "max", "i", 11)

		got, _ := reg.RegistryRead(ctx, 2, "limits", "max", "i")
		assertValue(t, got, value.Int(10))

		reg.RegistryWrite(ctx, 1, "limits", "max", "i", 10)
		exists, err := reg.RegistryExists(ctx, 1, "limits", "max", "i")
		if err != nil || exists {
			t.Errorf("RegistryExists = %v, %v", exists, err)
		}
	})

	t.Run("ReadOnce", func(t *testing.T) {
		reg.SystemWrite(ctx, "flash", "msg", "s", "hello")
		got, _ := reg.SystemReadOnce(ctx, "flash", "msg", "s")
		assertValue(t, got, value.Str("hello"))
		got, _ = reg.SystemReadOnce(ctx, "flash", "msg", "s")
		assertValue(t, got, value.Null())
	})

	t.Run("All", func(t *testing.T) {
		defer reg.SystemDelete(ctx, "list", "a", "b")
		reg.SystemWrite(ctx, "list", "a", "b", true)

		entries, err := reg.SystemAll(ctx)
		if err != nil {
			t.Fatalf("SystemAll failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Key != "list" || entries[0].Value != "1" {
			t.Errorf("SystemAll = %v", entries)
		}
	})
}
