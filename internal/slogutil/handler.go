// Package slogutil provides the slog handler and logger constructors used by deploydiff.
package slogutil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"deploydiff/internal/errors"
)

// Attribute keys with a fixed place in the line.
const (
	// RunKey holds the run ID. It is printed, shortened, right after the level.
	RunKey = "run"
	// PathKey holds a root-relative path. It is printed first among the attributes.
	PathKey = "path"
)

// shortRunLen is how much of the run ID is printed. Eight hex digits
// are enough to tell runs apart in one log file.
const shortRunLen = 8

// LineHandler is a slog handler that formats one record per line:
//
//	TIMESTAMP [level] (run) Message | path=... key=value key=value
//
// Values containing spaces are quoted. Errors carrying a deploydiff error
// code get a code attribute next to them.
type LineHandler struct {
	w      io.Writer
	level  slog.Leveler
	run    string
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// NewLineHandler creates a new line handler.
func NewLineHandler(w io.Writer, level slog.Leveler) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &LineHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the log record.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	// Timestamp
	buf.WriteString(r.Time.UTC().Format(time.RFC3339))

	// Level
	buf.WriteString(" [")
	buf.WriteString(levelString(r.Level))
	buf.WriteString("] ")

	// Collect record attrs; a run set on the record wins over one set by With
	run := h.run
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == RunKey && len(h.groups) == 0 {
			run = a.Value.String()
			return true
		}
		attrs = append(attrs, h.resolveAttr(a))
		return true
	})

	if run != "" {
		buf.WriteString("(")
		buf.WriteString(shortRun(run))
		buf.WriteString(") ")
	}

	// Message
	buf.WriteString(r.Message)

	attrs = pathFirst(attrs)
	if len(attrs) > 0 {
		buf.WriteString(" |")
		for _, a := range attrs {
			writeAttr(&buf, a)
		}
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new handler with the given attributes added.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(clone.attrs, h.attrs)

	for _, a := range attrs {
		if a.Key == RunKey && len(h.groups) == 0 {
			clone.run = a.Value.String()
			continue
		}
		clone.attrs = append(clone.attrs, h.resolveAttr(a))
	}
	return clone
}

// WithGroup returns a new handler with the given group name added.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = make([]string, len(h.groups)+1)
	copy(clone.groups, h.groups)
	clone.groups[len(h.groups)] = name
	return clone
}

func (h *LineHandler) clone() *LineHandler {
	return &LineHandler{
		w:      h.w,
		level:  h.level,
		run:    h.run,
		attrs:  h.attrs,
		groups: h.groups,
		mu:     h.mu,
	}
}

// resolveAttr applies group prefixes to attribute keys.
func (h *LineHandler) resolveAttr(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	// Prefix key with group names
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return slog.Attr{Key: key, Value: a.Value}
}

// pathFirst moves the path attribute, if any, to the front.
func pathFirst(attrs []slog.Attr) []slog.Attr {
	for i, a := range attrs {
		if a.Key != PathKey {
			continue
		}
		if i > 0 {
			copy(attrs[1:i+1], attrs[:i])
			attrs[0] = a
		}
		break
	}
	return attrs
}

func writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Key == "" {
		return
	}
	buf.WriteString(" ")
	buf.WriteString(a.Key)
	buf.WriteString("=")
	buf.WriteString(formatValue(a.Value))

	if a.Value.Kind() != slog.KindAny {
		return
	}
	var de *errors.DiffError
	if err, ok := a.Value.Any().(error); ok && stderrors.As(err, &de) {
		buf.WriteString(" code=")
		buf.WriteString(string(de.Code))
	}
}

func shortRun(run string) string {
	run = strings.ReplaceAll(run, "-", "")
	if len(run) > shortRunLen {
		return run[:shortRunLen]
	}
	return run
}

// levelString returns a lowercase level string.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// formatValue formats a slog.Value for output. Empty strings and strings
// with whitespace or quotes are quoted so paths stay readable.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		if err, ok := v.Any().(error); ok {
			return quoteIfNeeded(err.Error())
		}
		return fmt.Sprint(v.Any())
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
