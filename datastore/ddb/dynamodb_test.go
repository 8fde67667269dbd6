/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// sdkError wraps err the way the SDK returns service exceptions.
func sdkError(err error) error {
	return &smithy.OperationError{
		ServiceID:     "DynamoDB",
		OperationName: "Scan",
		Err:           fmt.Errorf("https response error StatusCode: 400, RequestID: abc, %w", err),
	}
}

func newTestStore(client *fakeClient, opts ...storagemodels.ScanOption) *DynamodbDataStore {
	opts = append([]storagemodels.ScanOption{storagemodels.WithRetryBackoff(time.Millisecond)}, opts...)
	store := NewDynamodbDataStore(client, "settings", datastore.NewHashLayout("registry", ":"), opts...)
	store.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return store
}

func TestDynamoDBCRUD(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := newTestStore(client)
	id := storagemodels.RegistryID(8, "ui", "theme", value.String)

	exists, err := store.Exists(ctx, id)
	if err != nil || exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	ok, err := store.Write(ctx, id, "dark")
	if err != nil || !ok {
		t.Fatalf("Write = %v, %v", ok, err)
	}

	it := client.items["registry:registry:8:ui\x00theme:s"]
	if it == nil {
		t.Fatalf("item not stored under expected key: %v", client.items)
	}
	if got := str(it["UpdatedAt"]); got != "2025-01-02T03:04:05.000Z" {
		t.Errorf("UpdatedAt = %q", got)
	}
	if n, ok := it["OwnerID"].(*types.AttributeValueMemberN); !ok || n.Value != "8" {
		t.Errorf("OwnerID = %#v", it["OwnerID"])
	}

	raw, found, err := store.Read(ctx, id)
	if err != nil || !found || raw != "dark" {
		t.Fatalf("Read = %q, %v, %v", raw, found, err)
	}
	if !aws.ToBool(client.lastGet.ConsistentRead) {
		t.Error("reads must be consistent")
	}

	exists, err = store.Exists(ctx, id)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	deleted, err := store.Delete(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, id)
	if err != nil || deleted {
		t.Fatalf("second Delete = %v, %v", deleted, err)
	}

	_, found, err = store.Read(ctx, id)
	if err != nil || found {
		t.Fatalf("Read after delete = %v, %v", found, err)
	}
}

func TestDynamoDBTypeIsPartOfKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeClient())

	store.Write(ctx, storagemodels.SystemID("k", "n", value.Integer), "1")
	_, found, err := store.Read(ctx, storagemodels.SystemID("k", "n", value.String))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if found {
		t.Error("a setting written as i must not be visible as s")
	}
}

func TestDynamoDBAllPaginates(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := newTestStore(client, storagemodels.WithPageSize(2))

	for i := 0; i < 5; i++ {
		store.Write(ctx, storagemodels.RegistryID(int64(i), "ui", "width", value.Integer), fmt.Sprint(i*10))
	}
	store.Write(ctx, storagemodels.SystemID("site", "title", value.String), "Home")

	entries, err := store.All(ctx, storagemodels.ScopeRegistry)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d: %v", len(entries), entries)
	}
	for i, e := range entries {
		if e.Owner != int64(i) || e.Value != fmt.Sprint(i*10) || e.Type != value.Integer {
			t.Errorf("entries[%d] = %+v", i, e)
		}
	}
	if client.scans < 3 {
		t.Errorf("Expected several scan pages, got %d", client.scans)
	}

	sys, err := store.All(ctx, storagemodels.ScopeSystem)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(sys) != 1 || sys[0].Key != "site" || sys[0].Owner != 0 {
		t.Errorf("system entries = %+v", sys)
	}
}

func TestDynamoDBScanRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("RetryableErrorsAreRetried", func(t *testing.T) {
		client := newFakeClient()
		client.scanErrs = []error{
			&types.ProvisionedThroughputExceededException{Message: aws.String("slow down")},
			&types.InternalServerError{Message: aws.String("oops")},
		}
		store := newTestStore(client)
		store.Write(ctx, storagemodels.SystemID("k", "n", value.String), "v")

		entries, err := store.All(ctx, storagemodels.ScopeSystem)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(entries) != 1 || client.scans != 3 {
			t.Errorf("entries=%d scans=%d", len(entries), client.scans)
		}
	})

	t.Run("WrappedSDKErrorsAreRetried", func(t *testing.T) {
		client := newFakeClient()
		client.scanErrs = []error{
			sdkError(&types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}),
			sdkError(&types.RequestLimitExceeded{Message: aws.String("limit")}),
		}
		store := newTestStore(client)
		store.Write(ctx, storagemodels.SystemID("k", "n", value.String), "v")

		entries, err := store.All(ctx, storagemodels.ScopeSystem)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(entries) != 1 || client.scans != 3 {
			t.Errorf("entries=%d scans=%d", len(entries), client.scans)
		}
	})

	t.Run("GivesUpAfterMaxRetries", func(t *testing.T) {
		client := newFakeClient()
		for i := 0; i < 5; i++ {
			client.scanErrs = append(client.scanErrs, &types.RequestLimitExceeded{Message: aws.String("limit")})
		}
		store := newTestStore(client, storagemodels.WithMaxRetries(2))

		_, err := store.All(ctx, storagemodels.ScopeSystem)
		var rle *types.RequestLimitExceeded
		if !errors.As(err, &rle) {
			t.Fatalf("Expected RequestLimitExceeded, got %v", err)
		}
		if client.scans != 3 {
			t.Errorf("Expected 3 attempts, got %d", client.scans)
		}
	})

	t.Run("NonRetryableFailsFast", func(t *testing.T) {
		client := newFakeClient()
		client.scanErrs = []error{&types.ResourceNotFoundException{Message: aws.String("no table")}}
		store := newTestStore(client)

		_, err := store.All(ctx, storagemodels.ScopeSystem)
		if err == nil || client.scans != 1 {
			t.Fatalf("err=%v scans=%d", err, client.scans)
		}
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		client := newFakeClient()
		client.scanErrs = []error{&types.InternalServerError{Message: aws.String("oops")}}
		store := newTestStore(client, storagemodels.WithRetryBackoff(time.Hour))

		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err := store.All(ctx, storagemodels.ScopeSystem)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Expected deadline exceeded, got %v", err)
		}
	})
}

type retryableErr struct{ retry bool }

func (e retryableErr) Error() string     { return "transient" }
func (e retryableErr) IsRetryable() bool { return e.retry }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&types.ProvisionedThroughputExceededException{}, true},
		{&types.RequestLimitExceeded{}, true},
		{&types.InternalServerError{}, true},
		{&types.ResourceNotFoundException{}, false},
		{errors.New("plain"), false},
		{sdkError(&types.ProvisionedThroughputExceededException{}), true},
		{sdkError(&types.RequestLimitExceeded{}), true},
		{sdkError(&types.InternalServerError{}), true},
		{sdkError(&types.ResourceNotFoundException{}), false},
		{fmt.Errorf("scan page: %w", retryableErr{true}), true},
		{sdkError(retryableErr{false}), false},
	}
	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%T) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
