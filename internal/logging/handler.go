// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package logging provides structured logging stamped with the process
// identity and OpenTelemetry trace context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Log formats accepted by Setup.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormat reports whether format is accepted by Setup.
func ValidFormat(format string) bool {
	return format == FormatJSON || format == FormatText
}

// identityHandler wraps a slog.Handler to add service metadata, the uids
// the process holds when the record is emitted, and trace context.
type identityHandler struct {
	handler slog.Handler
	service string
	version string
}

// Handle adds service, identity and trace attributes to the log record.
func (h *identityHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
		// Read per record: the effective uid changes during a privileged load.
		slog.Int("uid", os.Getuid()),
		slog.Int("euid", os.Geteuid()),
	)

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return h.handler.Handle(ctx, r)
}

// Enabled returns true if the level is enabled.
func (h *identityHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *identityHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &identityHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
	}
}

// WithGroup returns a new handler with the given group.
func (h *identityHandler) WithGroup(name string) slog.Handler {
	return &identityHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
	}
}

// Setup creates a configured slog.Logger.
// format: "json" or "text" (defaults to "json" if empty)
// If w is nil, writes to os.Stderr.
func Setup(service, version, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	var baseHandler slog.Handler
	if format == FormatText {
		baseHandler = slog.NewTextHandler(w, opts)
	} else {
		baseHandler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(&identityHandler{
		handler: baseHandler,
		service: service,
		version: version,
	})
}

// SetDefault sets up and installs the default logger, writing to w.
func SetDefault(service, version, format string, w io.Writer) *slog.Logger {
	logger := Setup(service, version, format, w)
	slog.SetDefault(logger)
	return logger
}
