package pblu

import (
	"io"
	"os"

	bufra "github.com/avvmoto/buf-readerat"
	"github.com/cockroachdb/errors"
)

const defaultMetadataBufferSize = 4096

// containerReader provides typed, bounds-checked access to an archive's
// header, file table, and name table over a buffered handle, and knows
// how to hand out independent handles for per-file data views.
type containerReader struct {
	path string

	meta io.ReaderAt // buffered, used only for header/table/name parsing
	hdr  header
}

// openContainer opens the archive at path, validates its header, and
// readies it for file-table and name-table reads. It does not resolve
// the directory tree; callers do that with the returned containerReader.
func openContainer(path string, metadataBufferSize int) (*containerReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "pblu: opening archive")
	}

	if metadataBufferSize <= 0 {
		metadataBufferSize = defaultMetadataBufferSize
	}
	meta := bufra.NewBufReaderAt(f, metadataBufferSize)

	hdr, err := readHeader(meta)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &containerReader{
		path: path,
		meta: meta,
		hdr:  hdr,
	}, nil
}

// readFileEntry reads the file-table row at the given 1-based index.
func (c *containerReader) readFileEntry(index uint32) (fileTableEntry, error) {
	return readFileEntry(c.meta, c.hdr.filetblOffset, index)
}

// readNameEntry reads the name entry at the given absolute byte offset.
func (c *containerReader) readNameEntry(offset uint64) (nameTableEntry, error) {
	return readNameEntry(c.meta, offset)
}

// cloneHandle opens an independent handle to the archive file, for a
// per-file data view to own. Go's *os.File has no native handle-clone
// operation, so this reopens by the path the archive was opened with.
func (c *containerReader) cloneHandle() (*os.File, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, errors.Wrap(err, "pblu: cloning archive handle")
	}
	return f, nil
}
