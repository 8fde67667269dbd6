/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package settingstore

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/suparena/settingstore/storagemodels"
)

// DefaultTable holds static default values: scope name, then
// "<key><delimiter><name>", then a scalar. It is read-only once loaded.
type DefaultTable map[string]map[string]any

// LoadDefaultTable parses a YAML file shaped like
//
//	registry:
//	  "settings:language": en
//	system:
//	  "mail:sender": noreply@example.com
//
// A missing file yields a nil table and no error. Entries whose value is not a
// scalar are skipped.
func LoadDefaultTable(path string) (DefaultTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read default values: %w", err)
	}
	return ParseDefaultTable(data)
}

// ParseDefaultTable parses YAML content as described by LoadDefaultTable.
// Empty content yields an empty, non-nil table.
func ParseDefaultTable(data []byte) (DefaultTable, error) {
	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse default values: %w", err)
	}

	table := make(DefaultTable)
	for scope, raw := range parsed {
		entries, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for path, v := range entries {
			if !isScalar(v) {
				continue
			}
			if table[scope] == nil {
				table[scope] = make(map[string]any)
			}
			table[scope][path] = v
		}
	}
	return table, nil
}

// Lookup returns the default stored for key and name in scope.
func (t DefaultTable) Lookup(scope storagemodels.Scope, key, name, delimiter string) (any, bool) {
	entries, ok := t[string(scope)]
	if !ok {
		return nil, false
	}
	v, ok := entries[key+delimiter+name]
	return v, ok
}

// Len returns the number of defaults across scopes.
func (t DefaultTable) Len() int {
	n := 0
	for _, entries := range t {
		n += len(entries)
	}
	return n
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, uint64, float64, time.Time:
		return true
	}
	return false
}
