package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffered(t *testing.T, format Format, verbosity int) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Format: format, Verbosity: verbosity})
	require.NoError(t, err)
	return l, &buf
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, l.Verbosity())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Options{Verbosity: 6})
	assert.ErrorIs(t, err, ErrInvalidVerbosity)

	_, err = New(Options{Format: "xml"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSetVerbosity(t *testing.T) {
	l, _ := newBuffered(t, FormatConsole, DefaultVerbosity)

	for v := 0; v <= 5; v++ {
		require.NoError(t, l.SetVerbosity(v))
		assert.Equal(t, v, l.Verbosity())
	}

	err := l.SetVerbosity(-1)
	assert.ErrorIs(t, err, ErrInvalidVerbosity)
	err = l.SetVerbosity(6)
	assert.ErrorIs(t, err, ErrInvalidVerbosity)
	assert.Equal(t, 5, l.Verbosity(), "failed call must not change verbosity")
}

func TestVerbosityFiltering(t *testing.T) {
	tests := []struct {
		verbosity int
		shown     []string
		hidden    []string
	}{
		{0, []string{"error", "print"}, []string{"warn", "success", "info", "hint", "debug"}},
		{1, []string{"error", "warn", "important"}, []string{"success", "info"}},
		{2, []string{"warn", "success"}, []string{"save", "info", "hint"}},
		{3, []string{"success", "save", "info"}, []string{"hint", "debug"}},
		{4, []string{"info", "hint"}, []string{"debug"}},
		{5, []string{"hint", "debug"}, nil},
	}

	for _, tt := range tests {
		l, buf := newBuffered(t, FormatConsole, tt.verbosity)
		l.Error("error")
		l.Print("print")
		l.Important("important")
		l.Warn("warn")
		l.Success("success")
		l.Save("save")
		l.Info("info")
		l.Hint("hint")
		l.Debug("debug")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		words := make(map[string]bool, len(lines))
		for _, line := range lines {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				words[fields[len(fields)-1]] = true
			}
		}
		for _, s := range tt.shown {
			assert.Truef(t, words[s], "verbosity %d should show %q", tt.verbosity, s)
		}
		for _, s := range tt.hidden {
			assert.Falsef(t, words[s], "verbosity %d should hide %q", tt.verbosity, s)
		}
	}
}

func TestMute(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 3)

	restore := l.Mute()
	assert.Equal(t, 0, l.Verbosity())
	l.Info("hidden")
	restore()

	assert.Equal(t, 3, l.Verbosity())
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf, Verbosity: 3, Indent: "  "})
	require.NoError(t, err)

	l.Info("mapped identifiers", "count", 3)
	out := buf.String()

	assert.Contains(t, out, "  mapped identifiers count=3")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "•")
}

func TestConsoleOutput_WithAndGroups(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 3)

	l.With("field", "symbol").Info("inspected")
	assert.Contains(t, buf.String(), "inspected field=symbol")

	buf.Reset()
	l.Slog().WithGroup("search").Info("ranked", "hits", 2)
	assert.Contains(t, buf.String(), "ranked search.hits=2")
}

func TestConsoleOutput_TimePassed(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 3)

	start := time.Now().Add(-(time.Hour + 2*time.Minute + 5*time.Second + 300*time.Millisecond))
	l.Info("loaded table", Since(start), "rows", 6)
	assert.Contains(t, buf.String(), "loaded table (1:02:05) rows=6")
	assert.NotContains(t, buf.String(), TimePassedKey)

	buf.Reset()
	l.Info("took {time_passed} to load", Since(time.Now().Add(-3*time.Second)))
	assert.Contains(t, buf.String(), "took 0:00:03 to load\n")
}

func TestDeep(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 1)

	l.Warn(l.Deep(LevelWarn, "2 identifiers map to several values", "GCS, FAD"))
	assert.Contains(t, buf.String(), "2 identifiers map to several values\n")

	require.NoError(t, l.SetVerbosity(3))
	buf.Reset()
	l.Warn(l.Deep(LevelWarn, "2 identifiers map to several values", "GCS, FAD"))
	assert.Contains(t, buf.String(), "2 identifiers map to several values: GCS, FAD\n")

	var nilLogger *Logger
	assert.Equal(t, "msg", nilLogger.Deep(LevelWarn, "msg", "detail"))
}

func TestPrintHasNoIcon(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 0)
	l.Print("plain")
	assert.Equal(t, "plain\n", buf.String())
	assert.Empty(t, Icon(LevelPrint))
}

func TestJSONOutput_LevelNames(t *testing.T) {
	l, buf := newBuffered(t, FormatJSON, 4)
	l.Hint("try a synonym field")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "HINT", rec["level"])
	assert.Equal(t, "try a synonym field", rec["msg"])
}

func TestTextOutput_LevelNames(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewText(&buf, 2)
	require.NoError(t, err)
	l.Success("done")
	assert.Contains(t, buf.String(), "level=SUCCESS")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewJSON(&buf, 1)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "IMPORTANT", LevelName(LevelImportant))
	assert.Equal(t, "WARN", LevelName(LevelWarn))
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("ignored")
		l.Warn("ignored")
		l.Critical("ignored")
		l.Mute()()
		_ = l.With("k", "v")
		l.Slog().Info("ignored")
	})
	assert.False(t, l.Enabled(LevelError))
	assert.NoError(t, l.SetVerbosity(2))
	assert.ErrorIs(t, l.SetVerbosity(9), ErrInvalidVerbosity)
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.False(t, l.Enabled(LevelCritical))
}

func TestCheckRuntime(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 1)

	assert.False(t, CheckRuntime(l, "go1.25.6"))
	assert.Empty(t, buf.String())

	assert.True(t, CheckRuntime(l, "go1.20"))
	assert.Contains(t, buf.String(), "are currently not tested")

	assert.False(t, CheckRuntime(l, "devel +abc"))
}

func TestConcurrentLogging(t *testing.T) {
	l, buf := newBuffered(t, FormatConsole, 3)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info("concurrent", "i", i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "concurrent"))
}
