// Package log is the structured logger of nana, a thin layer over
// [log/slog] with a trace level and a pretty handler.
//
// A [Logger] is made once with functional options and is safe for
// concurrent use:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("none"))
//
//	logger.Info("compiled", slog.String("source", path))
//	logger.Error("decode failed", log.Err(err))
//
// [Logger.Wrap] derives a logger with options overridden and
// [Logger.With] one that adds attributes to every record:
//
//	unit := logger.With(slog.String("source", "lib.yaml"))
//	unit.Trace("context created", slog.Int("id", 2))
//
// The package-level functions such as [Info] and [TraceContext] write
// through a default logger on standard error, reconfigured with [Config].
// Methods without a context argument use [DefaultContextProvider].
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug]. The resolver reports each context it
// creates at trace level, so a trace log of a large program is long.
// [ParseLevel] accepts any level name, ignoring case.
//
// # Time
//
// [WithTimeLayout] accepts the name of a layout from the [time] package
// ("RFC3339", "rfc3339nano", "DateTime", "Kitchen"), matched ignoring case
// and punctuation, or a literal layout. "none" or a blank layout omits the
// timestamp.
//
// # Formats
//
// Records are JSON ([FormatJSON], the default) or key=value text
// ([FormatText]). With [WithPretty], also the default, JSON records are
// indented over several lines, and keys and levels are colored with
// lipgloss when the output is a terminal. The pretty handler flattens groups
// and [slog.LogValuer] values into dotted keys:
//
//	level=warn msg=run failed error.op=write configuration file error.file=...
package log
