// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const termTimeFormat = "01-02|15:04:05.000"

// TerminalHandler writes human-readable, optionally colorized records.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	level    slog.Leveler
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler creates a terminal handler writing to wr.
func NewTerminalHandler(wr io.Writer, level slog.Leveler, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		level:    level,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(h.levelTag(record.Level))
	sb.WriteByte('[')
	sb.WriteString(record.Time.Format(termTimeFormat))
	sb.WriteString("] ")
	sb.WriteString(record.Message)
	for _, attr := range h.attrs {
		writeAttr(&sb, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, attr)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.wr, sb.String())
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	return &TerminalHandler{
		wr:       h.wr,
		level:    h.level,
		useColor: h.useColor,
		attrs:    append(merged, attrs...),
	}
}

func (h *TerminalHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TerminalHandler) levelTag(level slog.Level) string {
	tag, color := "INFO ", "\x1b[32m"
	switch {
	case level >= slog.LevelError:
		tag, color = "ERROR", "\x1b[31m"
	case level >= slog.LevelWarn:
		tag, color = "WARN ", "\x1b[33m"
	case level < slog.LevelInfo:
		tag, color = "DEBUG", "\x1b[36m"
	}
	if h.useColor {
		return color + tag + "\x1b[0m"
	}
	return tag
}

func writeAttr(sb *strings.Builder, attr slog.Attr) {
	sb.WriteByte(' ')
	sb.WriteString(attr.Key)
	sb.WriteByte('=')
	value := attr.Value.Resolve()
	switch value.Kind() {
	case slog.KindTime:
		sb.WriteString(value.Time().Format(time.RFC3339))
	default:
		fmt.Fprintf(sb, "%v", value.Any())
	}
}
