// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

package privilege

import (
	"os/user"
	"strconv"

	"github.com/samber/oops"
)

// DefaultAccount owns the catalog file.
const DefaultAccount = "pitchpoltadmin"

// Account is a resolved system account.
type Account struct {
	Name string
	UID  int
}

// AccountResolver looks up a system account by name.
type AccountResolver interface {
	Lookup(name string) (Account, error)
}

// SystemAccounts resolves accounts from the host user database.
type SystemAccounts struct{}

// Lookup implements AccountResolver.
func (SystemAccounts) Lookup(name string) (Account, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return Account{}, oops.With("account", name).Wrap(err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Account{}, oops.With("account", name).With("uid", u.Uid).Wrapf(err, "non-numeric uid")
	}
	return Account{Name: u.Username, UID: uid}, nil
}
