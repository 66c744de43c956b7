// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package privilege loads the item catalog under a dedicated system account
// and permanently drops that identity before any game logic runs.
package privilege

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/samber/oops"

	"github.com/pitchpolt/pitchpolt/internal/codec"
	"github.com/pitchpolt/pitchpolt/internal/observability"
	"github.com/pitchpolt/pitchpolt/internal/record"
)

// Player runs the game against a loaded catalog. It is only ever called with
// the process fully unprivileged.
type Player interface {
	PlayGame(ctx context.Context, catalog []record.ItemDetails) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context, catalog []record.ItemDetails) error

// PlayGame implements Player.
func (f PlayerFunc) PlayGame(ctx context.Context, catalog []record.ItemDetails) error {
	return f(ctx, catalog)
}

// Opener opens a file for reading.
type Opener func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	//nolint:wrapcheck // wrapped by the loader with context
	return os.Open(path) //nolint:gosec // path comes from trusted configuration
}

// Loader runs the privileged catalog load. Zero-value fields fall back to
// the system implementations.
type Loader struct {
	Account  string
	Resolver AccountResolver
	Identity Identity
	Open     Opener
	Decoder  *codec.Decoder
	Logger   *slog.Logger
	Metrics  *observability.Metrics
}

// SecureLoad resolves the catalog account, assumes its identity, loads and
// validates the catalog at path, permanently drops back to the caller's
// identity and only then hands the catalog to player.
//
// Errors before dispatch wrap ErrPrivilege or ErrData; player errors are
// returned as-is.
func (l *Loader) SecureLoad(ctx context.Context, path string, player Player) error {
	catalog, err := l.load(path)
	l.Metrics.RecordSecureLoad(Class(err))
	if err != nil {
		return err
	}
	l.Metrics.RecordRecordsLoaded("item_details", len(catalog))

	l.logger().InfoContext(ctx, "dispatching game", "items", len(catalog))
	return player.PlayGame(ctx, catalog)
}

func (l *Loader) load(path string) (catalog []record.ItemDetails, err error) {
	logger := l.logger()
	name := l.account()

	acct, err := l.resolver().Lookup(name)
	if err != nil {
		return nil, privilegeFault(oops.Code("PRIVILEGE_ACCOUNT_NOT_FOUND").With("account", name), err)
	}

	session, err := Assume(l.identity(), acct)
	if err != nil {
		return nil, err
	}
	logger.Info("privilege assumed",
		"session_id", session.ID.String(),
		"account", acct.Name,
		"uid", acct.UID,
	)

	// Drop runs on every exit path; a failed drop outranks any data error.
	defer func() {
		if dropErr := session.Drop(); dropErr != nil {
			catalog, err = nil, dropErr
			return
		}
		logger.Info("privilege dropped",
			"session_id", session.ID.String(),
			"uid", session.OriginalUID(),
		)
	}()

	f, err := l.opener()(path)
	if err != nil {
		return nil, dataFault(oops.Code("CATALOG_OPEN_FAILED").With("path", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("failed to close catalog", "path", path, "error", cerr)
		}
	}()

	catalog, err = l.decoder().LoadItemDetails(f)
	if err != nil {
		return nil, dataFault(oops.Code("CATALOG_LOAD_FAILED").With("path", path), err)
	}
	return catalog, nil
}

func (l *Loader) account() string {
	if l.Account == "" {
		return DefaultAccount
	}
	return l.Account
}

func (l *Loader) resolver() AccountResolver {
	if l.Resolver == nil {
		return SystemAccounts{}
	}
	return l.Resolver
}

func (l *Loader) identity() Identity {
	if l.Identity == nil {
		return ProcessIdentity{}
	}
	return l.Identity
}

func (l *Loader) opener() Opener {
	if l.Open == nil {
		return openFile
	}
	return l.Open
}

func (l *Loader) decoder() *codec.Decoder {
	if l.Decoder == nil {
		return codec.NewDecoder(codec.DefaultLimits)
	}
	return l.Decoder
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
