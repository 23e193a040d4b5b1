package pblu

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadHeaderRejectsOverlappingTable(t *testing.T) {
	b := newArchiveBuilder()
	b.writeHeader(0x24, 0x20) // filetbl_offset < header_size
	r := bytes.NewReader(b.bytes())

	_, err := readHeader(r)
	if !errors.Is(err, ErrHeaderInvalid) {
		t.Fatalf("readHeader() error = %v, want ErrHeaderInvalid", err)
	}
}

func TestReadHeaderAcceptsMaxHeaderSize(t *testing.T) {
	b := newArchiveBuilder()
	b.writeHeader(0x24, 0x24)
	r := bytes.NewReader(b.bytes())

	h, err := readHeader(r)
	if err != nil {
		t.Fatalf("readHeader() error = %v", err)
	}
	if h.headerSize != 0x24 || h.filetblOffset != 0x24 {
		t.Fatalf("readHeader() = %+v, want headerSize=0x24 filetblOffset=0x24", h)
	}
}

func TestReadHeaderRejectsTruncatedInput(t *testing.T) {
	_, err := readHeader(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Fatal("readHeader() error = nil, want non-nil")
	}
}
