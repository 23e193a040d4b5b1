package pblu

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
)

// FileDataView is a seekable, read-only byte stream over a single
// file's logical payload. It owns an independent file handle, acquired
// when the view was constructed, and should be closed when the caller
// is done with it.
type FileDataView interface {
	io.Reader
	io.Seeker
	io.Closer

	// Size returns the logical length of the stream: the decompressed
	// size for a ZLIB payload, or the on-disk size otherwise.
	Size() uint64
}

const zlibMagic = "ZLIB"

// openDataView inspects the first four bytes of entry's payload to pick
// a variant, then constructs it. The peek uses ReadAt, so the handle's
// own offset is left untouched; both variants read the payload through
// an io.SectionReader positioned at entry.offset.
func openDataView(handle *os.File, entry fileTableEntry, name string, log *slog.Logger) (FileDataView, error) {
	var peek [4]byte
	n, err := handle.ReadAt(peek[:], int64(entry.offset))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "pblu: peeking file payload")
	}

	if n == 4 && string(peek[:]) == zlibMagic {
		log.Debug("pblu: opening file data view", "file", name, "variant", "zlib")
		return newZlibView(handle, entry, name, log)
	}
	log.Debug("pblu: opening file data view", "file", name, "variant", "plain")
	return newPlainView(handle, entry), nil
}
