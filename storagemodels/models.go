/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"time"

	"github.com/suparena/settingstore/value"
)

// Scope selects the per-user or the global namespace.
type Scope string

const (
	// ScopeRegistry holds per-user settings. Owner 0 is the scope-wide default.
	ScopeRegistry Scope = "registry"
	// ScopeSystem holds global settings; it has no owner dimension.
	ScopeSystem Scope = "system"
)

// Scopes lists both scopes in a stable order.
var Scopes = []Scope{ScopeRegistry, ScopeSystem}

func (s Scope) String() string {
	return string(s)
}

// Identity addresses a single setting. Owner is ignored for ScopeSystem.
// Whether Type takes part in the lookup depends on the DataStore.
type Identity struct {
	Scope Scope
	Owner int64
	Key   string
	Name  string
	Type  value.Type
}

// RegistryID builds a per-user identity.
func RegistryID(owner int64, key, name string, typ value.Type) Identity {
	return Identity{Scope: ScopeRegistry, Owner: owner, Key: key, Name: name, Type: typ}
}

// SystemID builds a global identity.
func SystemID(key, name string, typ value.Type) Identity {
	return Identity{Scope: ScopeSystem, Key: key, Name: name, Type: typ}
}

// WithOwner returns a copy of id addressed to another owner.
func (id Identity) WithOwner(owner int64) Identity {
	id.Owner = owner
	return id
}

func (id Identity) String() string {
	if id.Scope == ScopeSystem {
		return fmt.Sprintf("system/%s/%s (%s)", id.Key, id.Name, id.Type)
	}
	return fmt.Sprintf("registry/%d/%s/%s (%s)", id.Owner, id.Key, id.Name, id.Type)
}

// Entry is a setting as stored, with its raw string value.
type Entry struct {
	Scope Scope      `json:"scope"`
	Owner int64      `json:"owner,omitempty"`
	Key   string     `json:"key"`
	Name  string     `json:"name"`
	Type  value.Type `json:"type"`
	Value string     `json:"value"`
}

// Identity returns the address of e.
func (e Entry) Identity() Identity {
	return Identity{Scope: e.Scope, Owner: e.Owner, Key: e.Key, Name: e.Name, Type: e.Type}
}

func (e Entry) String() string {
	if e.Scope == ScopeSystem {
		return fmt.Sprintf("%s/%s = %s (%s)", e.Key, e.Name, e.Value, e.Type)
	}
	return fmt.Sprintf("%d - %s/%s = %s (%s)", e.Owner, e.Key, e.Name, e.Value, e.Type)
}

// ScanOptions configures full scans of a scope (DataStore.All).
type ScanOptions struct {
	PageSize     int32         // Items requested per page (default: 100)
	MaxRetries   int           // Retry attempts for transient errors (default: 3)
	RetryBackoff time.Duration // Backoff between retries, multiplied by the attempt (default: 1s)
}

// ScanOption is a functional option for configuring scans
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scan options
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
	}
}

// WithPageSize sets the page size
func WithPageSize(size int32) ScanOption {
	return func(opts *ScanOptions) {
		opts.PageSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) ScanOption {
	return func(opts *ScanOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) ScanOption {
	return func(opts *ScanOptions) {
		opts.RetryBackoff = backoff
	}
}
