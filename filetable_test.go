package pblu

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadFileEntryRejectsIndexZero(t *testing.T) {
	_, err := readFileEntry(bytes.NewReader(nil), 0, 0)
	if !errors.Is(err, ErrIndexZero) {
		t.Fatalf("readFileEntry() error = %v, want ErrIndexZero", err)
	}
}

func TestReadFileEntryDecodesRow(t *testing.T) {
	b := newArchiveBuilder()
	b.writeFileEntry(0x11, 0x22)   // index 1
	b.writeFileEntry(0x100, 0x200) // index 2
	r := bytes.NewReader(b.bytes())

	e, err := readFileEntry(r, 0, 2)
	if err != nil {
		t.Fatalf("readFileEntry() error = %v", err)
	}
	if e.offset != 0x100 || e.size != 0x200 {
		t.Fatalf("readFileEntry(2) = %+v, want offset=0x100 size=0x200", e)
	}
}
