// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/privilege"
	"github.com/pitchpolt/pitchpolt/internal/record"
	"github.com/pitchpolt/pitchpolt/internal/source"
)

// newCharactersCmd creates the characters command group.
func newCharactersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"chars"},
		Short:   "Build, dump and validate character save files",
	}
	cmd.AddCommand(newCharactersBuildCmd(a))
	cmd.AddCommand(newCharactersDumpCmd(a))
	cmd.AddCommand(newCharactersValidateCmd(a))
	return cmd
}

func newCharactersBuildCmd(a *app) *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile a roster.yaml source file into a character save file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.fail(runCharactersBuild(cmd, a, cfg))
		},
	}

	cmd.Flags().StringVar(&cfg.from, "from", "roster.yaml", "YAML roster source")
	cmd.Flags().StringVar(&cfg.out, "out", "characters.bin", "output file")

	return cmd
}

func runCharactersBuild(cmd *cobra.Command, a *app, cfg *buildConfig) error {
	data, err := os.ReadFile(cfg.from) //nolint:gosec // path supplied by the operator
	if err != nil {
		return oops.Code("SOURCE_READ_FAILED").With("path", cfg.from).Wrap(err)
	}
	src, err := source.ParseRoster(data)
	if err != nil {
		return oops.With("path", cfg.from).Wrap(err)
	}
	arr, err := src.Records()
	if err != nil {
		return oops.With("path", cfg.from).Wrap(err)
	}

	var buf bytes.Buffer
	if err := codec.SaveCharacters(&buf, arr); err != nil {
		return oops.With("path", cfg.from).Wrap(err)
	}
	if err := writeOutput(cfg.out, buf.Bytes()); err != nil {
		return err
	}

	a.logger.Info("characters built", "from", cfg.from, "out", cfg.out, "characters", len(arr))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d characters to %s\n", len(arr), cfg.out)
	return nil
}

func newCharactersDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a character save file as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(runCharactersDump(cmd, a, args[0]))
		},
	}
}

func newCharactersValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a character save file loads cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arr, err := loadCharactersFile(a, args[0])
			if err != nil {
				return a.fail(err)
			}
			var carried int
			for i := range arr {
				carried += len(arr[i].Items())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d characters, %d inventory slots\n", args[0], len(arr), carried)
			return nil
		},
	}
}

func runCharactersDump(cmd *cobra.Command, a *app, path string) error {
	arr, err := loadCharactersFile(a, path)
	if err != nil {
		return err
	}
	data, err := source.Marshal(source.RosterFrom(arr))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err //nolint:wrapcheck // terminal write
}

func loadCharactersFile(a *app, path string) ([]record.Character, error) {
	arr, err := loadFile(path, codec.NewDecoder(a.cfg.Limits()).LoadCharacters)
	if err != nil {
		a.metrics.RecordLoadFailure("character", privilege.Class(err))
		return nil, err
	}
	a.metrics.RecordRecordsLoaded("character", len(arr))
	return arr, nil
}
