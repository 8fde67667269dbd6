/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/settingstore"
	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore/traced"

	// engines
	_ "github.com/suparena/settingstore/datastore/ddb"
	_ "github.com/suparena/settingstore/datastore/mock"
	_ "github.com/suparena/settingstore/datastore/redis"
	_ "github.com/suparena/settingstore/datastore/sqlstore"
)

// app holds the flags and the store shared by every subcommand.
type app struct {
	configPath string
	engine     string
	debug      bool
	jsonOut    bool

	out    io.Writer
	errOut io.Writer

	reg      *settingstore.Registry
	provider *traced.Provider
}

// run executes the command line in args and releases the store afterwards,
// including when the command failed.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close(ctx))
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "settingsctl",
		Short: "Inspect and edit typed settings",
		Long: `settingsctl reads and writes settings in the configured store.

Per-user settings live under "registry" and take an owner id; owner 0 holds
the default for every user. Global settings live under "system".

Type codes: i (integer), b (boolean), s (string), f (float), d (date), t (time).`,
		Version:           settingstore.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./settingstore.yaml if present)")
	root.PersistentFlags().StringVar(&a.engine, "engine", "", "storage engine, overrides the config file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(a.scopeCmd(true))
	root.AddCommand(a.scopeCmd(false))
	root.AddCommand(a.versionCmd())
	return root
}

func (a *app) open(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.engine != "" {
		cfg.Engine = a.engine
	}

	logger := newLogger(a.errOut, a.debug || strings.EqualFold(cfg.LogLevel, "debug"))
	slog.SetDefault(logger)

	a.provider, err = traced.NewProvider(cfg.Tracing, a.errOut)
	if err != nil {
		return err
	}

	a.reg, err = settingstore.Open(cmd.Context(), cfg,
		settingstore.WithLogger(logger),
		settingstore.WithTraceOptions(traced.WithTracerProvider(a.provider.TracerProvider())),
	)
	if err != nil {
		return err
	}
	logger.Debug("opened settings store", "engine", cfg.Engine)
	return nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.reg != nil {
		errs = append(errs, a.reg.Close())
		a.reg = nil
	}
	if a.provider != nil {
		errs = append(errs, a.provider.Shutdown(ctx))
		a.provider = nil
	}
	return errors.Join(errs...)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	var opts *slog.HandlerOptions
	if debug {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printVersion()
		},
	}
}
