// Package cli contains the command line interface for nana.
//
// # Usage
//
// Every command reads one or more nana documents, flattens them into the
// canonical form, and resolves their scopes:
//
//	nana check prog.yaml lib.yaml
//	nana fmt resolved prog.yaml
//	nana query 'kind == "UnresolvedName"' prog.yaml
//	nana explore prog.yaml
//
// A source named "-" (the default) is read from standard input. Relative
// source names that do not exist in the working directory are searched in
// the directories given with --include, followed by the directories listed
// in the NANAPATH environment variable.
//
// # Configuration File
//
// Flag defaults are read from the "config" mapping of config.yaml in the
// user configuration directory. The init command writes that file from the
// current flag values:
//
//	nana --max-depth=64 --include=lib init --force
//
// # Language Options
//
//   - --include, -I: Add a directory to the source search path
//   - --predeclared: Add a name to the universe context
//   - --max-depth: Limit document nesting (0 for unlimited)
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// Log records are written to standard error.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o nana .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/nana/pprof)
//
// # Examples
//
//	# Report every diagnostic as JSON
//	nana check --json prog.yaml
//
//	# Debug logging with CPU profiling
//	nana --log-level=debug --pprof-mode=cpu check prog.yaml
package cli
