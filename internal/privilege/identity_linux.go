// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

//go:build linux

package privilege

import "golang.org/x/sys/unix"

// ProcessIdentity changes the uids of the whole process. On Linux the
// runtime applies set*id calls to every thread.
type ProcessIdentity struct{}

// Getuid implements Identity.
func (ProcessIdentity) Getuid() int { return unix.Getuid() }

// Geteuid implements Identity.
func (ProcessIdentity) Geteuid() int { return unix.Geteuid() }

// Getresuid implements Identity.
func (ProcessIdentity) Getresuid() (ruid, euid, suid int) { return unix.Getresuid() }

// Seteuid implements Identity. Real and saved uids are left unchanged.
func (ProcessIdentity) Seteuid(euid int) error {
	//nolint:wrapcheck // wrapped by the session with context
	return unix.Setresuid(-1, euid, -1)
}

// Setresuid implements Identity.
func (ProcessIdentity) Setresuid(ruid, euid, suid int) error {
	//nolint:wrapcheck // wrapped by the session with context
	return unix.Setresuid(ruid, euid, suid)
}
