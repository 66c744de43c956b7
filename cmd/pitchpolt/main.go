// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package main is the entry point for the pitchpolt game launcher and its
// catalog and save-game tools.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pitchpolt/pitchpolt/internal/privilege"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Install settings fixed at build time with -ldflags -X. They are not
// configurable at run time because play runs setuid.
var (
	catalogAccount = "pitchpoltadmin"
	catalogPath    = "/var/lib/pitchpolt/catalog.bin"
)

func main() {
	cmd := NewRootCmd(nil)
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitError carries a process exit status chosen by a subcommand.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// exitCode returns the status carried by an exitError, else the privilege
// classification of err.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return privilege.ExitCode(err)
}
