// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log provides helper functions over the standard log/slog
// structured logging package. The Debug, Info, Warn, and Error
// functions take a context, a message, and statically typed slog.Attr
// arguments, so simple values are logged without extra allocations.
// Attributes which are stored in a context using WithAttrs (such as a
// request ID) are appended to every record which is logged with that
// context.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

type ctxKey struct{}

// WithAttrs returns a child of ctx which carries attrs in addition to
// the attributes of ctx itself.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	all := make([]slog.Attr, 0, len(prev)+len(attrs))
	all = append(all, prev...)
	all = append(all, attrs...)
	return context.WithValue(ctx, ctxKey{}, all)
}

// Debug logs msg and attrs with the given context at the debug level.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs msg and attrs with the given context at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs msg and attrs with the given context at the warning level.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs msg and attrs with the given context at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, slog.LevelError, msg, attrs...)
}

// logAttrs must be called directly by the exported functions of this
// package, so the reported source position belongs to their caller.
func logAttrs(
	ctx context.Context,
	level slog.Level,
	msg string,
	attrs ...slog.Attr,
) {
	l := slog.Default()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, its parent in log pkg]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if ctxAttrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(ctxAttrs...)
	}
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
