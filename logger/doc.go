// Package logger provides the leveled logging sink used for diagnostics.
//
// A [Logger] is an explicit value handed to the components that need it;
// there is no package-level logger. A nil *Logger discards everything, so
// library options can leave it unset.
//
// # Levels and Verbosity
//
// Besides slog's Debug/Info/Warn/Error the package defines Hint, Save,
// Success, Important, Print and Critical. [Logger.SetVerbosity] selects the
// minimum level:
//
//	0: error      3: info
//	1: warning    4: hint
//	2: success    5: debug
//
// Values outside 0..5 fail with [ErrInvalidVerbosity].
//
// # Output
//
// FormatConsole renders one line per record, prefixed with a coloured icon.
// FormatText and FormatJSON use the slog handlers with [ReplaceLevelNames].
//
//	log, err := logger.New(logger.Options{Verbosity: 3})
//	log.Success("mapped identifiers", "count", 12)
package logger
