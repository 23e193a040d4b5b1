package pblu

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// plainView is the uncompressed FileDataView variant: a direct bounded
// slice of the underlying handle.
type plainView struct {
	handle *os.File
	r      *io.SectionReader

	baseOffset uint64
	size       uint64
	cur        uint64
}

func newPlainView(handle *os.File, entry fileTableEntry) *plainView {
	return &plainView{
		handle:     handle,
		r:          io.NewSectionReader(handle, int64(entry.offset), int64(entry.size)),
		baseOffset: uint64(entry.offset),
		size:       uint64(entry.size),
	}
}

func (v *plainView) Size() uint64 { return v.size }

func (v *plainView) Read(buf []byte) (int, error) {
	readable := v.size - v.cur
	if uint64(len(buf)) < readable {
		readable = uint64(len(buf))
	}
	if readable == 0 {
		if v.cur >= v.size {
			return 0, io.EOF
		}
		return 0, nil
	}

	n, err := v.r.ReadAt(buf[:readable], int64(v.cur))
	v.cur += uint64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (v *plainView) Seek(offset int64, whence int) (int64, error) {
	t, err := seekTarget(offset, whence, int64(v.cur), int64(v.size))
	if err != nil {
		return 0, err
	}
	v.cur = uint64(t)
	return t, nil
}

func (v *plainView) Close() error { return v.handle.Close() }

// seekTarget resolves an io.Seeker-style request against a logical
// stream of the given size, rejecting any target outside [0, size].
func seekTarget(offset int64, whence int, cur, size int64) (int64, error) {
	var t int64
	switch whence {
	case io.SeekStart:
		t = offset
	case io.SeekCurrent:
		t = cur + offset
	case io.SeekEnd:
		t = size + offset
	default:
		return 0, errors.Newf("pblu: invalid whence %d", whence)
	}
	if t < 0 || t > size {
		return 0, errors.Wrapf(ErrSeekOutOfRange, "pblu: seek target %d (size %d)", t, size)
	}
	return t, nil
}
