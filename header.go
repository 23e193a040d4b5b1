package pblu

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

const (
	magicPBLU = 0x4C555042

	headerSizeMin = 0x20
	headerSizeMax = 0x24

	fileTableEntrySize = 8
	nameEntryFixedSize = 10
)

// header is the fixed 32-byte archive header, decoded little-endian.
type header struct {
	magic         uint32
	headerSize    uint32
	filetblOffset uint32
}

// readHeader reads and validates the archive header from r, starting at
// offset 0.
func readHeader(r io.ReaderAt) (header, error) {
	var buf [headerSizeMin]byte
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, headerSizeMin), buf[:]); err != nil {
		return header{}, errors.Wrap(err, "pblu: reading header")
	}

	h := header{
		magic:         binary.LittleEndian.Uint32(buf[0:4]),
		headerSize:    binary.LittleEndian.Uint32(buf[4:8]),
		filetblOffset: binary.LittleEndian.Uint32(buf[0x1C:0x20]),
	}

	if h.magic != magicPBLU {
		return header{}, errors.Wrapf(ErrHeaderInvalid, "bad magic %#08x", h.magic)
	}
	if h.headerSize < headerSizeMin || h.headerSize > headerSizeMax {
		return header{}, errors.Wrapf(ErrHeaderInvalid, "unsupported header_size %#x", h.headerSize)
	}
	if h.filetblOffset < h.headerSize {
		return header{}, errors.Wrapf(ErrHeaderInvalid, "filetbl_offset %#x precedes header_size %#x", h.filetblOffset, h.headerSize)
	}

	return h, nil
}
