// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package privilege

import "github.com/samber/oops"

// Identity manipulates the user ids of the running process.
type Identity interface {
	Getuid() int
	Geteuid() int
	// Getresuid reports real, effective and saved uids.
	Getresuid() (ruid, euid, suid int)
	// Seteuid changes only the effective uid.
	Seteuid(euid int) error
	// Setresuid sets real, effective and saved uids at once.
	Setresuid(ruid, euid, suid int) error
}

// Relinquish sets the effective uid back to the real uid. A setuid binary
// starts with the owner's effective uid; after Relinquish the owner's uid is
// held only as the saved uid, where Assume can take it back. It does nothing
// when the process is not elevated.
func Relinquish(identity Identity) error {
	ruid, euid := identity.Getuid(), identity.Geteuid()
	if ruid == euid {
		return nil
	}

	b := oops.Code("PRIVILEGE_RELINQUISH_FAILED").With("real_uid", ruid).With("euid", euid)
	if err := identity.Seteuid(ruid); err != nil {
		return privilegeFault(b, err)
	}
	if got := identity.Geteuid(); got != ruid {
		return privilegeFault(b, oops.Errorf("effective uid still %d", got))
	}
	return nil
}
