// Package pblu reads PBLU archives: a proprietary container format that
// packs a tree of named files and directories into a single file,
// optionally storing payloads in a block-compressed form.
//
// Open parses an archive's header and tables into an immutable
// in-memory directory tree. OpenFile then produces an independent,
// seekable read stream for any file in that tree, transparently
// inflating block-compressed payloads through a small hot-block cache.
//
// Writing or mutating archives, concurrent access to a single
// FileDataView, and network or memory-mapped I/O are out of scope.
package pblu

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Archive is a fully resolved, immutable view of one PBLU archive file.
type Archive struct {
	container *containerReader
	root      *Directory
	log       *slog.Logger
}

// Option configures OpenOptions.
type Option func(*openConfig)

type openConfig struct {
	metadataBufferSize int
	log                *slog.Logger
}

// WithMetadataBufferSize sets the read-ahead buffer size, in bytes, used
// by the buffered handle that backs header, file-table, and name-table
// reads during Open. The default is 4096.
func WithMetadataBufferSize(n int) Option {
	return func(c *openConfig) { c.metadataBufferSize = n }
}

// WithLogger sets the logger used for the archive's debug-level
// diagnostics (data-view variant selection, block-cache admission and
// eviction). The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *openConfig) { c.log = log }
}

// Open opens and fully resolves the archive at path. The returned
// Archive is immutable; no partial archive is ever returned on error.
func Open(path string) (*Archive, error) {
	return OpenOptions(path)
}

// OpenOptions is Open with functional options for the metadata buffer
// size and logger.
func OpenOptions(path string, opts ...Option) (*Archive, error) {
	cfg := openConfig{
		metadataBufferSize: defaultMetadataBufferSize,
		log:                slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	container, err := openContainer(path, cfg.metadataBufferSize)
	if err != nil {
		return nil, err
	}

	root, err := resolveTree(container)
	if err != nil {
		return nil, errors.Wrap(err, "pblu: resolving directory tree")
	}

	return &Archive{container: container, root: root, log: cfg.log}, nil
}

// Root returns the archive's root directory.
func (a *Archive) Root() *Directory { return a.root }

// OpenFile produces an independent, seekable FileDataView over f's
// payload. Each call acquires its own file handle; callers must Close
// the returned view when done with it.
func (a *Archive) OpenFile(f *File) (FileDataView, error) {
	handle, err := a.container.cloneHandle()
	if err != nil {
		return nil, err
	}

	view, err := openDataView(handle, f.entry, f.name, a.log)
	if err != nil {
		handle.Close()
		return nil, err
	}
	return view, nil
}
