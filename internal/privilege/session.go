// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package privilege

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session is the window between assuming an elevated effective uid and
// permanently dropping it. Callers defer Drop immediately after Assume.
type Session struct {
	ID          ulid.ULID
	Account     Account
	originalUID int

	identity Identity
	dropped  bool
	dropErr  error
}

// Assume sets the effective uid to acct. It only succeeds when the running
// binary is setuid to that account (or the process is already privileged).
func Assume(identity Identity, acct Account) (*Session, error) {
	s := &Session{
		ID:          ulid.Make(),
		Account:     acct,
		originalUID: identity.Getuid(),
		identity:    identity,
	}
	if err := identity.Seteuid(acct.UID); err != nil {
		return nil, privilegeFault(
			oops.Code("PRIVILEGE_ASSUME_FAILED").
				With("session_id", s.ID.String()).
				With("account", acct.Name).
				With("uid", acct.UID).
				With("real_uid", s.originalUID),
			err,
		)
	}
	return s, nil
}

// OriginalUID is the real uid of the caller the session drops back to.
func (s *Session) OriginalUID() int {
	return s.originalUID
}

// Drop sets real, effective and saved uids to the original caller so the
// elevated identity can never be regained, then reads all three back. It is
// safe to call repeatedly; later calls return the first result.
func (s *Session) Drop() error {
	if s.dropped {
		return s.dropErr
	}
	s.dropped = true

	uid := s.originalUID
	b := oops.Code("PRIVILEGE_DROP_FAILED").
		With("session_id", s.ID.String()).
		With("account", s.Account.Name).
		With("target_uid", uid)

	if err := s.identity.Setresuid(uid, uid, uid); err != nil {
		s.dropErr = privilegeFault(b, err)
		return s.dropErr
	}
	if ruid, euid, suid := s.identity.Getresuid(); ruid != uid || euid != uid || suid != uid {
		s.dropErr = privilegeFault(
			b.With("ruid", ruid).With("euid", euid).With("suid", suid),
			oops.Errorf("uids %d/%d/%d after drop, want %d", ruid, euid, suid, uid),
		)
	}
	return s.dropErr
}

// Dropped reports whether Drop has completed successfully.
func (s *Session) Dropped() bool {
	return s.dropped && s.dropErr == nil
}
