package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/log"
	"github.com/ardnew/nana/pkg"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands render their output to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type (
	optionsKey    struct{}
	searchPathKey struct{}
)

// WithOptions returns a new context.Context containing pipeline options
// applied to every document a command compiles.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return opts
}

// WithSearchPath returns a new context.Context containing the directories
// searched for source documents named on the command line.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// document is one source document read from a file or stdin.
type document struct {
	name string
	data []byte
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName names the document read from stdin.
const stdinName = "<stdin>"

// readDocuments reads the named source documents.
//
// Names are located on the search path stored in ctx. Documents are
// deduplicated by resolving symlinks and comparing device/inode pairs. All
// occurrences of "-" are replaced with a single stdin document placed last.
func readDocuments(ctx context.Context, sources []string) ([]document, error) {
	if len(sources) == 0 {
		return nil, pkg.ErrNoSource
	}

	dirs := searchPathFrom(ctx)
	docs := make([]document, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		path, err := pkg.Locate(src, dirs)
		if err != nil {
			return nil, err
		}

		file, ok := openUniqueFile(path, seen)
		if !ok {
			log.DebugContext(ctx, "skipped duplicate source",
				slog.String("source", src))

			continue
		}

		data, err := io.ReadAll(file)
		file.Close()

		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		docs = append(docs, document{name: src, data: data})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		docs = append(docs, document{name: stdinName, data: data})
	}

	return docs, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	// Get file info to extract device and inode.
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
