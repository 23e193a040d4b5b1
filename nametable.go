package pblu

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// entryKind distinguishes the two things a name entry can point at.
type entryKind uint32

const (
	kindFile      entryKind = 0
	kindDirectory entryKind = 1
)

// nameTableEntry is one variable-length name-table record. entrySize is
// the number of bytes it occupies on disk (10 + len(name)), needed by the
// resolver to advance through a directory's name-table block.
type nameTableEntry struct {
	fileIndex uint32
	kind      entryKind
	name      string
	entrySize uint32
}

// readNameEntry reads the name entry at the given absolute byte offset.
func readNameEntry(r io.ReaderAt, offset uint64) (nameTableEntry, error) {
	var fixed [nameEntryFixedSize]byte
	if _, err := io.ReadFull(io.NewSectionReader(r, int64(offset), nameEntryFixedSize), fixed[:]); err != nil {
		return nameTableEntry{}, errors.Wrapf(err, "pblu: reading name entry at %#x", offset)
	}

	fileIndex := binary.LittleEndian.Uint32(fixed[0:4])
	kindRaw := binary.LittleEndian.Uint32(fixed[4:8])
	nameLen := binary.LittleEndian.Uint16(fixed[8:10])

	if fileIndex == 0 {
		return nameTableEntry{}, errors.Wrapf(ErrIndexZero, "pblu: name entry at %#x", offset)
	}

	kind := entryKind(kindRaw)
	if kind != kindFile && kind != kindDirectory {
		return nameTableEntry{}, errors.Wrapf(ErrUnknownKind, "pblu: name entry at %#x has kind %d", offset, kindRaw)
	}

	name := make([]byte, nameLen)
	if nameLen > 0 {
		if _, err := io.ReadFull(io.NewSectionReader(r, int64(offset)+nameEntryFixedSize, int64(nameLen)), name); err != nil {
			return nameTableEntry{}, errors.Wrapf(err, "pblu: reading name bytes at %#x", offset)
		}
	}

	return nameTableEntry{
		fileIndex: fileIndex,
		kind:      kind,
		name:      toUTF8Lossy(name),
		entrySize: nameEntryFixedSize + uint32(nameLen),
	}, nil
}

// toUTF8Lossy decodes b as UTF-8, replacing invalid sequences with
// utf8.RuneError (U+FFFD) one byte at a time, matching the lossy
// replacement the archive format requires for names that aren't
// guaranteed valid UTF-8 on disk.
func toUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb []rune
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb = append(sb, r)
		b = b[size:]
	}
	return string(sb)
}
