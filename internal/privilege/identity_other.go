// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

//go:build !linux

package privilege

import (
	"os"
	"runtime"

	"github.com/samber/oops"
)

// ProcessIdentity reports the process uids but cannot change them outside
// Linux, where process-wide set*id semantics are not guaranteed.
type ProcessIdentity struct{}

// Getuid implements Identity.
func (ProcessIdentity) Getuid() int { return os.Getuid() }

// Geteuid implements Identity.
func (ProcessIdentity) Geteuid() int { return os.Geteuid() }

// Getresuid implements Identity. The saved uid is not observable here and
// is reported as -1.
func (ProcessIdentity) Getresuid() (ruid, euid, suid int) {
	return os.Getuid(), os.Geteuid(), -1
}

// Seteuid implements Identity.
func (ProcessIdentity) Seteuid(int) error {
	return oops.Code("PRIVILEGE_UNSUPPORTED").With("goos", runtime.GOOS).Errorf("seteuid unsupported")
}

// Setresuid implements Identity.
func (ProcessIdentity) Setresuid(int, int, int) error {
	return oops.Code("PRIVILEGE_UNSUPPORTED").With("goos", runtime.GOOS).Errorf("setresuid unsupported")
}
