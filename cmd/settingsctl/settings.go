/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/suparena/settingstore/errors"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// target is a parsed setting address. owner is only used in the registry scope.
type target struct {
	registry bool
	owner    int64
	key      string
	name     string
	typ      string
}

// scopeCmd builds the "registry" or "system" command with its subcommands.
// Registry subcommands take an owner id before the key.
func (a *app) scopeCmd(registry bool) *cobra.Command {
	scope, addr, nAddr := storagemodels.ScopeSystem, "<key> <name>", 2
	if registry {
		scope, addr, nAddr = storagemodels.ScopeRegistry, "<owner> <key> <name>", 3
	}

	cmd := &cobra.Command{
		Use:   string(scope),
		Short: fmt.Sprintf("Work with %s settings", scope),
	}

	var typ, def string
	addType := func(c *cobra.Command) {
		c.Flags().StringVarP(&typ, "type", "t", "s", "type code or alias (i, b, s, f, d, t)")
	}

	get := &cobra.Command{
		Use:   "get " + addr,
		Short: "Read a setting, falling back to defaults",
		Args:  cobra.ExactArgs(nAddr),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(registry, args, typ)
			if err != nil {
				return err
			}
			v, err := a.get(cmd.Context(), t, def, cmd.Flags().Changed("default"))
			if err != nil {
				return err
			}
			return a.printValue(v)
		},
	}
	addType(get)
	get.Flags().StringVar(&def, "default", "", "value returned when the setting is missing; skips the default table")

	exists := &cobra.Command{
		Use:   "exists " + addr,
		Short: "Report whether the setting is stored, without fallback",
		Args:  cobra.ExactArgs(nAddr),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(registry, args, typ)
			if err != nil {
				return err
			}
			var ok bool
			if t.registry {
				ok, err = a.reg.RegistryExists(cmd.Context(), t.owner, t.key, t.name, t.typ)
			} else {
				ok, err = a.reg.SystemExists(cmd.Context(), t.key, t.name, t.typ)
			}
			if err != nil {
				return err
			}
			return a.printBool("exists", ok)
		},
	}
	addType(exists)

	del := &cobra.Command{
		Use:   "delete " + addr,
		Short: "Delete the setting",
		Args:  cobra.ExactArgs(nAddr),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(registry, args, typ)
			if err != nil {
				return err
			}
			var ok bool
			if t.registry {
				ok, err = a.reg.RegistryDelete(cmd.Context(), t.owner, t.key, t.name, t.typ)
			} else {
				ok, err = a.reg.SystemDelete(cmd.Context(), t.key, t.name, t.typ)
			}
			if err != nil {
				return err
			}
			return a.printBool("deleted", ok)
		},
	}
	addType(del)

	pop := &cobra.Command{
		Use:   "pop " + addr,
		Short: "Read the setting once and delete it",
		Args:  cobra.ExactArgs(nAddr),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(registry, args, typ)
			if err != nil {
				return err
			}
			var v value.Value
			if t.registry {
				v, err = a.reg.RegistryReadOnce(cmd.Context(), t.owner, t.key, t.name, t.typ)
			} else {
				v, err = a.reg.SystemReadOnce(cmd.Context(), t.key, t.name, t.typ)
			}
			if err != nil {
				return err
			}
			return a.printValue(v)
		},
	}
	addType(pop)

	set := &cobra.Command{
		Use:   "set " + addr + " <value>",
		Short: "Write a setting",
		Args:  cobra.ExactArgs(nAddr + 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTarget(registry, args[:nAddr], typ)
			if err != nil {
				return err
			}
			in, err := parseInput(value.Normalize(t.typ), args[nAddr])
			if err != nil {
				return err
			}
			var ok bool
			if t.registry {
				ok, err = a.reg.RegistryWrite(cmd.Context(), t.owner, t.key, t.name, t.typ, in)
			} else {
				ok, err = a.reg.SystemWrite(cmd.Context(), t.key, t.name, t.typ, in)
			}
			if err != nil {
				return err
			}
			return a.printBool("ok", ok)
		},
	}
	addType(set)

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List every stored %s setting", scope),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []storagemodels.Entry
			var err error
			if registry {
				entries, err = a.reg.RegistryAll(cmd.Context())
			} else {
				entries, err = a.reg.SystemAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printEntries(entries)
		},
	}

	cmd.AddCommand(get, exists, del, pop, set, list)
	return cmd
}

func (a *app) get(ctx context.Context, t target, def string, hasDefault bool) (value.Value, error) {
	if !hasDefault {
		if t.registry {
			return a.reg.RegistryRead(ctx, t.owner, t.key, t.name, t.typ)
		}
		return a.reg.SystemRead(ctx, t.key, t.name, t.typ)
	}
	if t.registry {
		return a.reg.RegistryReadDefault(ctx, t.owner, t.key, t.name, t.typ, def)
	}
	return a.reg.SystemReadDefault(ctx, t.key, t.name, t.typ, def)
}

func parseTarget(registry bool, args []string, typ string) (target, error) {
	t := target{registry: registry, typ: typ}
	if registry {
		owner, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return t, errors.NewValidationError("owner", fmt.Sprintf("%q is not an integer", args[0]))
		}
		t.owner = owner
		args = args[1:]
	}
	t.key, t.name = args[0], args[1]
	return t, nil
}

// parseInput converts a command line value to the Go type written for typ.
// Dates stay strings unless they are plain Unix timestamps.
func parseInput(typ value.Type, s string) (any, error) {
	switch typ {
	case value.Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("value", fmt.Sprintf("%q is not an integer", s))
		}
		return n, nil
	case value.Boolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.NewValidationError("value", fmt.Sprintf("%q is not a boolean", s))
		}
		return b, nil
	case value.Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.NewValidationError("value", fmt.Sprintf("%q is not a number", s))
		}
		return f, nil
	case value.Date, value.Time:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if _, ok := value.ParseTimestamp(s); !ok {
			return nil, errors.NewValidationError("value", fmt.Sprintf("%q is not a date", s))
		}
		return s, nil
	default:
		return s, nil
	}
}
