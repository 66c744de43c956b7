// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package game is the interactive catalog browser started once the catalog
// has been loaded and privileges dropped.
package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/pitchpolt/pitchpolt/internal/record"
)

// Browser reads commands from In and writes responses to Out.
type Browser struct {
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// PlayGame runs the command loop until "quit", end of input or ctx is done.
func (b *Browser) PlayGame(ctx context.Context, catalog []record.ItemDetails) error {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "game started", "items", len(catalog))

	index := make(map[string]int, len(catalog))
	for i := range catalog {
		index[catalog[i].Name.String()] = i
	}

	scanner := bufio.NewScanner(b.In)
	b.printf("%d items in catalog. Commands: list [pattern], show <name>, quit\n> ", len(catalog))
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return oops.Code("GAME_CANCELLED").Wrap(err)
		}

		verb, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "":
		case "quit", "exit":
			return nil
		case "list":
			if err := b.list(catalog, arg); err != nil {
				b.printf("bad pattern %q: %v\n", arg, err)
			}
		case "show":
			i, ok := index[arg]
			if !ok {
				b.printf("no item named %q\n", arg)
				break
			}
			b.printf("%s: %s\n", catalog[i].Name.String(), catalog[i].Desc.String())
		default:
			b.printf("unknown command %q\n", verb)
		}
		b.printf("> ")
	}
	if err := scanner.Err(); err != nil {
		return oops.Code("GAME_INPUT_FAILED").Wrap(err)
	}
	return nil
}

func (b *Browser) list(catalog []record.ItemDetails, pattern string) error {
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return err //nolint:wrapcheck // shown to the player verbatim
	}
	for i := range catalog {
		if name := catalog[i].Name.String(); g.Match(name) {
			b.printf("  %s\n", name)
		}
	}
	return nil
}

func (b *Browser) printf(format string, args ...any) {
	//nolint:errcheck // output failures surface through the input side
	fmt.Fprintf(b.Out, format, args...)
}
