package pblu

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadNameEntryRejectsUnknownKind(t *testing.T) {
	b := newArchiveBuilder()
	b.writeNameEntry(1, 2, "x") // kind 2 is neither file nor directory
	r := bytes.NewReader(b.bytes())

	_, err := readNameEntry(r, 0)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("readNameEntry() error = %v, want ErrUnknownKind", err)
	}
}

func TestReadNameEntryRejectsIndexZero(t *testing.T) {
	b := newArchiveBuilder()
	b.writeNameEntry(0, uint32(kindFile), "x")
	r := bytes.NewReader(b.bytes())

	_, err := readNameEntry(r, 0)
	if !errors.Is(err, ErrIndexZero) {
		t.Fatalf("readNameEntry() error = %v, want ErrIndexZero", err)
	}
}

func TestReadNameEntryEmptyName(t *testing.T) {
	b := newArchiveBuilder()
	b.writeNameEntry(3, uint32(kindDirectory), "")
	r := bytes.NewReader(b.bytes())

	e, err := readNameEntry(r, 0)
	if err != nil {
		t.Fatalf("readNameEntry() error = %v", err)
	}
	if e.name != "" {
		t.Fatalf("e.name = %q, want empty", e.name)
	}
	if e.entrySize != 10 {
		t.Fatalf("e.entrySize = %d, want 10", e.entrySize)
	}
}

func TestReadNameEntryLossyUTF8(t *testing.T) {
	var fixed [10]byte
	fixed[0] = 1 // file_index = 1
	fixed[8] = 2 // name_len = 2
	invalid := []byte{0xFF, 0xFE}

	var buf bytes.Buffer
	buf.Write(fixed[:])
	buf.Write(invalid)

	e, err := readNameEntry(bytes.NewReader(buf.Bytes()), 0)
	if err != nil {
		t.Fatalf("readNameEntry() error = %v", err)
	}
	if e.name == string(invalid) {
		t.Fatalf("e.name = %q, want lossily-decoded replacement", e.name)
	}
	for _, r := range e.name {
		if r != 0xFFFD {
			t.Fatalf("e.name = %q, want only replacement characters", e.name)
		}
	}
}
