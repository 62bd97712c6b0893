package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// Error values for consistent error handling by callers.
var (
	ErrInvalidVerbosity = errors.New("verbosity must be between 0 and 5")
	ErrInvalidFormat    = errors.New("invalid log format")
)

// Levels in addition to the slog ones. They sit between the standard levels
// so that verbosity filtering orders them naturally.
const (
	LevelDebug     = slog.LevelDebug
	LevelHint      = slog.Level(-2)
	LevelInfo      = slog.LevelInfo
	LevelSave      = slog.Level(1)
	LevelSuccess   = slog.Level(2)
	LevelWarn      = slog.LevelWarn
	LevelImportant = slog.Level(5)
	LevelError     = slog.LevelError
	LevelPrint     = slog.Level(9)
	LevelCritical  = slog.Level(12)
)

// DefaultVerbosity shows warnings and above.
const DefaultVerbosity = 1

var verbosityLevels = [...]slog.Level{
	0: LevelError,
	1: LevelWarn,
	2: LevelSuccess,
	3: LevelInfo,
	4: LevelHint,
	5: LevelDebug,
}

// VerbosityLevel returns the minimum level shown at verbosity v.
func VerbosityLevel(v int) (slog.Level, error) {
	if v < 0 || v >= len(verbosityLevels) {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidVerbosity, v)
	}
	return verbosityLevels[v], nil
}

// Format selects the output encoding of a Logger.
type Format string

const (
	FormatConsole Format = "console"
	FormatText    Format = "text"
	FormatJSON    Format = "json"
)

// Options configures New.
type Options struct {
	// Writer receives log output. Default: os.Stderr.
	Writer io.Writer

	// Format selects the handler. Default: FormatConsole.
	Format Format

	// Verbosity is 0 (errors only) through 5 (debug).
	Verbosity int

	// Indent prefixes every console message.
	Indent string
}

// Logger is a leveled logger passed explicitly to the components that emit
// diagnostics. A nil *Logger is valid and discards everything.
type Logger struct {
	slog      *slog.Logger
	level     *slog.LevelVar
	verbosity *atomic.Int32
}

// New creates a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := VerbosityLevel(opts.Verbosity)
	if err != nil {
		return nil, err
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	lv := new(slog.LevelVar)
	lv.Set(level)
	hopts := &slog.HandlerOptions{Level: lv, ReplaceAttr: ReplaceLevelNames}

	var handler slog.Handler
	switch opts.Format {
	case "", FormatConsole:
		handler = NewConsoleHandler(w, &ConsoleOptions{Level: lv, Indent: opts.Indent})
	case FormatText:
		handler = slog.NewTextHandler(w, hopts)
	case FormatJSON:
		handler = slog.NewJSONHandler(w, hopts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, opts.Format)
	}

	v := new(atomic.Int32)
	v.Store(int32(opts.Verbosity))
	return &Logger{slog: slog.New(handler), level: lv, verbosity: v}, nil
}

// NewConsole creates a console Logger at the default verbosity.
func NewConsole(w io.Writer) *Logger {
	l, _ := New(Options{Writer: w, Format: FormatConsole, Verbosity: DefaultVerbosity})
	return l
}

// NewJSON creates a JSON Logger at the given verbosity.
func NewJSON(w io.Writer, verbosity int) (*Logger, error) {
	return New(Options{Writer: w, Format: FormatJSON, Verbosity: verbosity})
}

// NewText creates a logfmt Logger at the given verbosity.
func NewText(w io.Writer, verbosity int) (*Logger, error) {
	return New(Options{Writer: w, Format: FormatText, Verbosity: verbosity})
}

// TimePassedKey is the attribute key written by Since.
const TimePassedKey = "time_passed"

// Since returns an attribute holding the time elapsed since start, truncated
// to whole seconds. The console handler renders it as " (h:mm:ss)" after the
// message, or in place of a "{time_passed}" placeholder.
func Since(start time.Time) slog.Attr {
	return slog.Duration(TimePassedKey, time.Since(start).Truncate(time.Second))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	l, _ := New(Options{Writer: io.Discard, Verbosity: 0})
	l.level.Set(slog.Level(1000))
	return l
}

// Verbosity returns the current verbosity.
func (l *Logger) Verbosity() int {
	if l == nil {
		return 0
	}
	return int(l.verbosity.Load())
}

// SetVerbosity changes which levels are emitted.
func (l *Logger) SetVerbosity(v int) error {
	level, err := VerbosityLevel(v)
	if err != nil {
		return err
	}
	if l == nil {
		return nil
	}
	l.verbosity.Store(int32(v))
	l.level.Set(level)
	return nil
}

// Mute drops the verbosity to 0 until the returned function is called.
func (l *Logger) Mute() (restore func()) {
	if l == nil {
		return func() {}
	}
	prev := l.Verbosity()
	_ = l.SetVerbosity(0)
	return func() { _ = l.SetVerbosity(prev) }
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	if l == nil {
		return false
	}
	return l.slog.Enabled(context.Background(), level)
}

// With returns a Logger that adds args to every record. It shares verbosity
// with l.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{slog: l.slog.With(args...), level: l.level, verbosity: l.verbosity}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.slog
}

// Log emits msg at the given level.
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil {
		return
	}
	l.slog.Log(ctx, level, msg, args...)
}

// Deep returns msg with ": detail" appended when l also emits levels below
// level, so the detail shows only at a higher verbosity than the message.
func (l *Logger) Deep(level slog.Level, msg, detail string) string {
	if l == nil || detail == "" || l.level.Level() >= level {
		return msg
	}
	return msg + ": " + detail
}

func (l *Logger) Debug(msg string, args ...any) { l.Log(context.Background(), LevelDebug, msg, args...) }
func (l *Logger) Hint(msg string, args ...any)  { l.Log(context.Background(), LevelHint, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.Log(context.Background(), LevelInfo, msg, args...) }
func (l *Logger) Save(msg string, args ...any)  { l.Log(context.Background(), LevelSave, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.Log(context.Background(), LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.Log(context.Background(), LevelError, msg, args...) }
func (l *Logger) Print(msg string, args ...any) { l.Log(context.Background(), LevelPrint, msg, args...) }

func (l *Logger) Success(msg string, args ...any) {
	l.Log(context.Background(), LevelSuccess, msg, args...)
}

func (l *Logger) Important(msg string, args ...any) {
	l.Log(context.Background(), LevelImportant, msg, args...)
}

func (l *Logger) Critical(msg string, args ...any) {
	l.Log(context.Background(), LevelCritical, msg, args...)
}

var levelNames = map[slog.Level]string{
	LevelHint:      "HINT",
	LevelSave:      "SAVE",
	LevelSuccess:   "SUCCESS",
	LevelImportant: "IMPORTANT",
	LevelPrint:     "PRINT",
	LevelCritical:  "CRITICAL",
}

// LevelName returns the display name of level.
func LevelName(level slog.Level) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return level.String()
}

// ReplaceLevelNames is a slog ReplaceAttr hook that renders the custom level
// names in text and JSON output.
func ReplaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		a.Value = slog.StringValue(LevelName(level))
	}
	return a
}
