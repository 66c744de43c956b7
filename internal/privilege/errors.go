// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package privilege

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Failure classes. Every error returned by SecureLoad before dispatch wraps
// exactly one of them.
var (
	// ErrPrivilege marks a deployment fault: missing account, binary not
	// installed setuid, or a failed identity drop.
	ErrPrivilege = errors.New("privilege management failure")
	// ErrData marks a missing, unreadable or corrupt catalog.
	ErrData = errors.New("catalog data failure")
)

// Process exit statuses for the play command.
const (
	ExitOK        = 0
	ExitData      = 1
	ExitPrivilege = 2
)

// ExitCode maps an error from SecureLoad to a process exit status.
// Errors outside both classes map to ExitData.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPrivilege):
		return ExitPrivilege
	default:
		return ExitData
	}
}

// Class names the failure class of err for logs and metrics.
func Class(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPrivilege):
		return "privilege"
	case errors.Is(err, ErrData):
		return "data"
	default:
		return "other"
	}
}

func privilegeFault(b oops.OopsErrorBuilder, err error) error {
	return b.In("privilege").Wrap(fmt.Errorf("%w: %w", ErrPrivilege, err))
}

func dataFault(b oops.OopsErrorBuilder, err error) error {
	return b.In("catalog").Wrap(fmt.Errorf("%w: %w", ErrData, err))
}
