/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/suparena/settingstore"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printValue(v value.Value) error {
	if a.jsonOut {
		return a.printJSON(map[string]any{
			"kind":  v.Kind().String(),
			"value": v.Interface(),
		})
	}
	if v.IsNull() {
		_, err := fmt.Fprintln(a.out, "null")
		return err
	}
	if b, ok := v.Bool(); ok {
		_, err := fmt.Fprintln(a.out, b)
		return err
	}
	_, err := fmt.Fprintln(a.out, v.String())
	return err
}

func (a *app) printBool(field string, b bool) error {
	if a.jsonOut {
		return a.printJSON(map[string]bool{field: b})
	}
	_, err := fmt.Fprintln(a.out, b)
	return err
}

func (a *app) printEntries(entries []storagemodels.Entry) error {
	if a.jsonOut {
		if entries == nil {
			entries = []storagemodels.Entry{}
		}
		return a.printJSON(entries)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tOWNER\tKEY\tNAME\tTYPE\tVALUE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", e.Scope, e.Owner, e.Key, e.Name, e.Type, e.Value)
	}
	return tw.Flush()
}

func (a *app) printVersion() error {
	info := settingstore.GetVersionInfo()
	if a.jsonOut {
		return a.printJSON(info)
	}
	_, err := fmt.Fprintf(a.out, "settingsctl version %s\nGit commit: %s\nBuild date: %s\nGo version: %s\n",
		info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
	return err
}
