// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package main

import (
	"github.com/pitchpolt/pitchpolt/internal/privilege"
)

// Deps contains injectable dependencies for the CLI.
// All fields with nil values will use their default implementations.
type Deps struct {
	// Resolver looks up the catalog account.
	// Default: privilege.SystemAccounts
	Resolver privilege.AccountResolver

	// Identity changes the process uids.
	// Default: privilege.ProcessIdentity
	Identity privilege.Identity

	// Open opens the catalog file.
	// Default: os.Open
	Open privilege.Opener
}

func (d *Deps) withDefaults() *Deps {
	out := &Deps{}
	if d != nil {
		*out = *d
	}
	if out.Resolver == nil {
		out.Resolver = privilege.SystemAccounts{}
	}
	if out.Identity == nil {
		out.Identity = privilege.ProcessIdentity{}
	}
	return out
}
