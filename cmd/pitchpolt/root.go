// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pitchpolt/pitchpolt/internal/config"
	"github.com/pitchpolt/pitchpolt/internal/logging"
	"github.com/pitchpolt/pitchpolt/internal/observability"
	"github.com/pitchpolt/pitchpolt/internal/privilege"
	"github.com/pitchpolt/pitchpolt/pkg/errutil"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *observability.Metrics
	deps       *Deps
}

// NewRootCmd creates the root command for the pitchpolt CLI.
// If deps is nil, default implementations are used.
func NewRootCmd(deps *Deps) *cobra.Command {
	a := &app{deps: deps.withDefaults()}

	cmd := &cobra.Command{
		Use:   "pitchpolt",
		Short: "Pitchpolt - catalog loader and save-game tools",
		Long: `Pitchpolt loads the item catalog under a dedicated system account,
drops that identity for good and then starts the game. It also builds,
dumps and validates catalog and character files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.flushMetrics()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/pitchpolt/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newPlayCmd(a))
	cmd.AddCommand(newCatalogCmd(a))
	cmd.AddCommand(newCharactersCmd(a))

	return cmd
}

// setup gives up the setuid effective uid before anything is read, then
// loads configuration as the invoking user.
func (a *app) setup(cmd *cobra.Command) error {
	if err := privilege.Relinquish(a.deps.Identity); err != nil {
		return err
	}

	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.SetDefault("pitchpolt", version, cfg.LogFormat, cmd.ErrOrStderr())
	a.metrics = observability.NewMetrics()

	a.logger.Debug("configuration loaded",
		"account", catalogAccount,
		"catalog", cfg.Catalog,
		"max_bytes", cfg.MaxBytes,
	)
	return nil
}

// fail flushes metrics before err leaves the command; cobra skips
// PersistentPostRunE when RunE fails. A privilege failure writes nothing.
func (a *app) fail(err error) error {
	if err == nil || errors.Is(err, privilege.ErrPrivilege) {
		return err
	}
	if ferr := a.flushMetrics(); ferr != nil {
		a.logger.Warn("metrics lost", "error", ferr)
	}
	return err
}

func (a *app) flushMetrics() error {
	if a.cfg == nil {
		return nil
	}
	if ruid, euid := a.deps.Identity.Getuid(), a.deps.Identity.Geteuid(); ruid != euid {
		a.logger.Warn("metrics not written while elevated", "uid", ruid, "euid", euid)
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		errutil.LogError(a.logger, "failed to write metrics", err)
		return err
	}
	return nil
}
