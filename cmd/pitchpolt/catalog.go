// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/privilege"
	"github.com/pitchpolt/pitchpolt/internal/record"
	"github.com/pitchpolt/pitchpolt/internal/source"
	"github.com/pitchpolt/pitchpolt/internal/xdg"
)

// buildConfig holds flags shared by the build subcommands.
type buildConfig struct {
	from string
	out  string
}

// newCatalogCmd creates the catalog command group.
func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build, dump and validate item catalog files",
	}
	cmd.AddCommand(newCatalogBuildCmd(a))
	cmd.AddCommand(newCatalogDumpCmd(a))
	cmd.AddCommand(newCatalogValidateCmd(a))
	return cmd
}

func newCatalogBuildCmd(a *app) *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile an items.yaml source file into a binary catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cfg.out
			if out == "" {
				out = a.cfg.Catalog
			}
			return a.fail(runCatalogBuild(cmd, a, cfg.from, out))
		},
	}

	cmd.Flags().StringVar(&cfg.from, "from", "items.yaml", "YAML catalog source")
	cmd.Flags().StringVar(&cfg.out, "out", "", "output file (default: configured catalog path)")

	return cmd
}

func runCatalogBuild(cmd *cobra.Command, a *app, from, out string) error {
	data, err := os.ReadFile(from) //nolint:gosec // path supplied by the operator
	if err != nil {
		return oops.Code("SOURCE_READ_FAILED").With("path", from).Wrap(err)
	}
	src, err := source.ParseCatalog(data)
	if err != nil {
		return oops.With("path", from).Wrap(err)
	}
	arr, err := src.ItemDetails()
	if err != nil {
		return oops.With("path", from).Wrap(err)
	}

	var buf bytes.Buffer
	if err := codec.SaveItemDetails(&buf, arr); err != nil {
		return oops.With("path", from).Wrap(err)
	}
	if err := writeOutput(out, buf.Bytes()); err != nil {
		return err
	}

	a.logger.Info("catalog built", "from", from, "out", out, "items", len(arr))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d items to %s (fingerprint %s)\n", len(arr), out, codec.Fingerprint(arr))
	return nil
}

func newCatalogDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "Print a binary catalog as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(runCatalogDump(cmd, a, fileArg(args, a.cfg.Catalog)))
		},
	}
}

func newCatalogValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a binary catalog loads cleanly",
		Long: `Loads the catalog exactly as the game does, without changing
identity, and prints its item count and content fingerprint.
Exits with code 0 on success, non-zero on failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fileArg(args, a.cfg.Catalog)
			arr, err := loadCatalogFile(a, path)
			if err != nil {
				return a.fail(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items, fingerprint %s\n", path, len(arr), codec.Fingerprint(arr))
			return nil
		},
	}
}

func runCatalogDump(cmd *cobra.Command, a *app, path string) error {
	arr, err := loadCatalogFile(a, path)
	if err != nil {
		return err
	}
	data, err := source.Marshal(source.CatalogFrom(arr))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err //nolint:wrapcheck // terminal write
}

func loadCatalogFile(a *app, path string) ([]record.ItemDetails, error) {
	arr, err := loadFile(path, codec.NewDecoder(a.cfg.Limits()).LoadItemDetails)
	if err != nil {
		a.metrics.RecordLoadFailure("item_details", privilege.Class(err))
		return nil, err
	}
	a.metrics.RecordRecordsLoaded("item_details", len(arr))
	return arr, nil
}

// loadFile opens path and decodes it with load. Failures wrap
// privilege.ErrData so they share the play command's classification.
func loadFile[T any](path string, load func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path) //nolint:gosec // path supplied by the operator
	if err != nil {
		return nil, oops.Code("FILE_OPEN_FAILED").With("path", path).Wrap(fmt.Errorf("%w: %w", privilege.ErrData, err))
	}
	defer func() { _ = f.Close() }()

	arr, err := load(f)
	if err != nil {
		return nil, oops.With("path", path).Wrap(fmt.Errorf("%w: %w", privilege.ErrData, err))
	}
	return arr, nil
}

func writeOutput(path string, data []byte) error {
	if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o640); err != nil { //nolint:gosec // group-readable for the catalog account
		return oops.Code("FILE_WRITE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}

func fileArg(args []string, fallback string) string {
	if len(args) == 1 {
		return args[0]
	}
	return fallback
}
