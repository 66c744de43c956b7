// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/game"
	"github.com/pitchpolt/pitchpolt/internal/privilege"
	"github.com/pitchpolt/pitchpolt/pkg/errutil"
)

// newPlayCmd creates the play subcommand.
func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Load the catalog with elevated rights, drop them and start the game",
		Long: `Assume the catalog account's identity, load and validate the installed
item catalog, permanently drop back to the invoking user and start the game.

The binary must be installed setuid to the catalog account. The account
and catalog path are fixed when the binary is built.
Exit status: 1 for a missing or corrupt catalog, 2 for a privilege fault.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, a)
		},
	}
}

func runPlay(cmd *cobra.Command, a *app) error {
	loader := &privilege.Loader{
		Account:  catalogAccount,
		Resolver: a.deps.Resolver,
		Identity: a.deps.Identity,
		Open:     a.deps.Open,
		Decoder:  codec.NewDecoder(a.cfg.Limits()),
		Logger:   a.logger,
		Metrics:  a.metrics,
	}
	browser := &game.Browser{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: a.logger,
	}

	err := loader.SecureLoad(cmd.Context(), catalogPath, browser)
	if err != nil {
		errutil.LogError(a.logger, "play failed", err, "class", privilege.Class(err), "path", catalogPath)
		return a.fail(&exitError{code: privilege.ExitCode(err), err: err})
	}
	return nil
}
