package pblu

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
)

// archiveBuilder assembles a synthetic .pblu archive byte-for-byte, for
// tests that need precise control over header fields, table layout, and
// payload bytes without checking in a binary fixture.
type archiveBuilder struct {
	buf bytes.Buffer
}

func newArchiveBuilder() *archiveBuilder { return &archiveBuilder{} }

func (b *archiveBuilder) writeHeader(headerSize, filetblOffset uint32) *archiveBuilder {
	var hdr [32]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magicPBLU)
	binary.LittleEndian.PutUint32(hdr[4:8], headerSize)
	binary.LittleEndian.PutUint32(hdr[0x1C:0x20], filetblOffset)
	b.buf.Write(hdr[:])
	return b
}

func (b *archiveBuilder) writeBadMagic() *archiveBuilder {
	var hdr [32]byte
	b.buf.Write(hdr[:])
	return b
}

func (b *archiveBuilder) padTo(offset int) *archiveBuilder {
	for b.buf.Len() < offset {
		b.buf.WriteByte(0)
	}
	return b
}

func (b *archiveBuilder) writeFileEntry(offset, size uint32) *archiveBuilder {
	var row [8]byte
	binary.LittleEndian.PutUint32(row[0:4], offset)
	binary.LittleEndian.PutUint32(row[4:8], size)
	b.buf.Write(row[:])
	return b
}

func (b *archiveBuilder) writeNameEntry(fileIndex uint32, kind uint32, name string) *archiveBuilder {
	var fixed [10]byte
	binary.LittleEndian.PutUint32(fixed[0:4], fileIndex)
	binary.LittleEndian.PutUint32(fixed[4:8], kind)
	binary.LittleEndian.PutUint16(fixed[8:10], uint16(len(name)))
	b.buf.Write(fixed[:])
	b.buf.WriteString(name)
	return b
}

func (b *archiveBuilder) writeBytes(p []byte) *archiveBuilder {
	b.buf.Write(p)
	return b
}

func (b *archiveBuilder) offset() uint32 { return uint32(b.buf.Len()) }

func (b *archiveBuilder) bytes() []byte { return b.buf.Bytes() }

// tempArchive writes data to a new temp file and returns its path. The
// file is removed when the test completes.
func tempArchive(t *testing.T, data []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.pblu")
	if err != nil {
		t.Fatalf("creating temp archive: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("writing temp archive: %v", err)
	}
	return f.Name()
}
