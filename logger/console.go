package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	grey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var levelIcons = map[slog.Level]string{
	LevelCritical:  red.Render("✗"),
	LevelError:     red.Render("✗"),
	LevelImportant: green.Render("→"),
	LevelWarn:      yellow.Render("!"),
	LevelSuccess:   green.Render("✓"),
	LevelSave:      green.Render("✓"),
	LevelInfo:      blue.Render("•"),
	LevelHint:      cyan.Render("•"),
	LevelDebug:     grey.Render("•"),
}

// Icon returns the console marker for level, or "" when the level has none.
func Icon(level slog.Level) string {
	return levelIcons[level]
}

// ConsoleOptions configures a ConsoleHandler.
type ConsoleOptions struct {
	// Level is the minimum level emitted. Default: LevelInfo.
	Level slog.Leveler

	// Indent prefixes every message after the icon.
	Indent string
}

// ConsoleHandler is a slog.Handler for humans: one line per record,
// "<icon> <indent><message> key=value ...".
type ConsoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	indent string
	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler creates a ConsoleHandler writing to w.
func NewConsoleHandler(w io.Writer, opts *ConsoleOptions) *ConsoleHandler {
	h := &ConsoleHandler{mu: &sync.Mutex{}, w: w, level: LevelInfo}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.indent = opts.Indent
	}
	return h
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if icon := Icon(r.Level); icon != "" {
		buf.WriteString(icon)
		buf.WriteByte(' ')
	}
	buf.WriteString(h.indent)

	msg, elapsed := r.Message, ""
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TimePassedKey && a.Value.Kind() == slog.KindDuration {
			elapsed = formatElapsed(a.Value.Duration())
			return true
		}
		attrs = append(attrs, a)
		return true
	})
	if elapsed != "" {
		if strings.Contains(msg, "{time_passed}") {
			msg = strings.ReplaceAll(msg, "{time_passed}", elapsed)
		} else {
			msg += " (" + elapsed + ")"
		}
	}
	buf.WriteString(msg)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&buf, "", a)
	}
	for _, a := range attrs {
		writeAttr(&buf, prefix, a)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	prefix := strings.Join(h.groups, ".")
	clone.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

// formatElapsed renders d as h:mm:ss.
func formatElapsed(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

func writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(buf, key, ga)
		}
		return
	}
	fmt.Fprintf(buf, " %s=%v", key, a.Value.Any())
}
