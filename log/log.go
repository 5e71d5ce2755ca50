// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging for the protocol. Loggers
// created with WithContext resolve the root handler at record time, so
// packages may declare loggers in vars before the process configures
// output.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// rootHandler keeps atomic.Value stores consistently typed across
// handler implementations.
type rootHandler struct {
	h slog.Handler
}

var root atomic.Value // rootHandler

func init() {
	root.Store(rootHandler{slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})})
}

// SetHandler replaces the root handler for all loggers, including those
// already created.
func SetHandler(h slog.Handler) {
	root.Store(rootHandler{h})
}

// WithContext creates a logger carrying the given key/value context.
func WithContext(kv ...any) *slog.Logger {
	return slog.New(&proxyHandler{}).With(kv...)
}

// proxyHandler forwards records to the current root handler, replaying
// accumulated attrs and groups.
type proxyHandler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *proxyHandler) resolve() slog.Handler {
	resolved := root.Load().(rootHandler).h
	for _, op := range h.ops {
		resolved = op(resolved)
	}
	return resolved
}

func (h *proxyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.resolve().Enabled(ctx, level)
}

func (h *proxyHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.resolve().Handle(ctx, record)
}

func (h *proxyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	ops = append(ops, func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) })
	return &proxyHandler{ops: ops}
}

func (h *proxyHandler) WithGroup(name string) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	ops = append(ops, func(next slog.Handler) slog.Handler { return next.WithGroup(name) })
	return &proxyHandler{ops: ops}
}
