package pblu

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// fileTableEntry is one 8-byte row of the file table, giving the byte
// span of whatever it describes (a directory's name-table block, or a
// file's payload).
type fileTableEntry struct {
	offset uint32
	size   uint32
}

// readFileEntry reads the file-table row at the given 1-based index.
// Index 0 is reserved and always rejected.
func readFileEntry(r io.ReaderAt, filetblOffset uint32, index uint32) (fileTableEntry, error) {
	if index == 0 {
		return fileTableEntry{}, errors.Wrap(ErrIndexZero, "pblu: reading file-table entry")
	}

	pos := int64(filetblOffset) + int64(index-1)*fileTableEntrySize

	var buf [fileTableEntrySize]byte
	if _, err := io.ReadFull(io.NewSectionReader(r, pos, fileTableEntrySize), buf[:]); err != nil {
		return fileTableEntry{}, errors.Wrapf(err, "pblu: reading file-table entry %d", index)
	}

	return fileTableEntry{
		offset: binary.LittleEndian.Uint32(buf[0:4]),
		size:   binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}
