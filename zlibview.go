package pblu

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zlib"
)

const (
	zlibHeaderSize   = 12
	maxZlibBlockSize = 0x1000000
)

// zlibView is the blocked-compressed FileDataView variant. The payload
// starts with a 12-byte header (magic, expanded size, block size)
// followed by a block-offset table and the packed blocks themselves.
type zlibView struct {
	handle *os.File
	packed *io.SectionReader // bounds the whole packed payload

	blockOffsets []uint32
	blockSize    uint32
	expandedSize uint64

	cur   uint64
	cache *blockCache
}

func newZlibView(handle *os.File, entry fileTableEntry, name string, log *slog.Logger) (*zlibView, error) {
	packed := io.NewSectionReader(handle, int64(entry.offset), int64(entry.size))

	var hdr [zlibHeaderSize]byte
	if _, err := io.ReadFull(io.NewSectionReader(packed, 0, zlibHeaderSize), hdr[:]); err != nil {
		return nil, errors.Wrap(err, "pblu: reading ZLIB payload header")
	}
	if string(hdr[0:4]) != zlibMagic {
		return nil, errors.Wrap(ErrZlibHeaderInvalid, "pblu: ZLIB magic mismatch")
	}

	expandedSize := binary.LittleEndian.Uint32(hdr[4:8])
	blockSize := binary.LittleEndian.Uint32(hdr[8:12])
	if blockSize == 0 || blockSize > maxZlibBlockSize {
		return nil, errors.Wrapf(ErrZlibHeaderInvalid, "pblu: ZLIB block size %#x", blockSize)
	}

	blockCount := uint32(0)
	if expandedSize > 0 {
		blockCount = uint32((uint64(expandedSize) + uint64(blockSize) - 1) / uint64(blockSize))
	}

	offsets := make([]uint32, blockCount)
	if blockCount > 0 {
		raw := make([]byte, 4*blockCount)
		if _, err := io.ReadFull(io.NewSectionReader(packed, zlibHeaderSize, int64(len(raw))), raw); err != nil {
			return nil, errors.Wrap(err, "pblu: reading ZLIB block offset table")
		}
		for i := range offsets {
			offsets[i] = binary.LittleEndian.Uint32(raw[4*i : 4*i+4])
		}
	}

	return &zlibView{
		handle:       handle,
		packed:       packed,
		blockOffsets: offsets,
		blockSize:    blockSize,
		expandedSize: uint64(expandedSize),
		cache:        newBlockCache(log, name),
	}, nil
}

func (v *zlibView) Size() uint64 { return v.expandedSize }

func (v *zlibView) Close() error { return v.handle.Close() }

func (v *zlibView) Seek(offset int64, whence int) (int64, error) {
	t, err := seekTarget(offset, whence, int64(v.cur), int64(v.expandedSize))
	if err != nil {
		return 0, err
	}
	v.cur = uint64(t)
	return t, nil
}

func (v *zlibView) Read(buf []byte) (int, error) {
	remaining := v.expandedSize - v.cur
	if uint64(len(buf)) < remaining {
		remaining = uint64(len(buf))
	}
	if remaining == 0 {
		if v.cur >= v.expandedSize {
			return 0, io.EOF
		}
		return 0, nil
	}

	total := 0
	out := buf
	for remaining > 0 {
		k := uint32(v.cur / uint64(v.blockSize))
		blockOff := v.cur % uint64(v.blockSize)

		block, err := v.getBlock(k)
		if err != nil {
			return total, err
		}

		n := uint64(len(block)) - blockOff
		if n > remaining {
			n = remaining
		}
		copy(out[:n], block[blockOff:blockOff+n])

		out = out[n:]
		v.cur += n
		remaining -= n
		total += int(n)
	}

	return total, nil
}

// getBlock returns the decoded bytes of block k, decoding and caching
// it if not already cached.
func (v *zlibView) getBlock(k uint32) ([]byte, error) {
	if b, ok := v.cache.get(k); ok {
		return b, nil
	}

	block, err := v.decodeBlock(k)
	if err != nil {
		return nil, err
	}

	v.cache.put(k, block)
	return block, nil
}

func (v *zlibView) decodeBlock(k uint32) ([]byte, error) {
	n := uint32(len(v.blockOffsets))

	packStart := uint64(v.blockOffsets[k])
	var packEnd uint64
	if k < n-1 {
		packEnd = uint64(v.blockOffsets[k+1])
	} else {
		packEnd = uint64(v.packed.Size())
	}
	if packEnd < packStart {
		return nil, errors.Wrapf(ErrZlibHeaderInvalid, "pblu: block %d has negative packed length", k)
	}
	packedLen := packEnd - packStart

	unpackedLen := uint64(v.blockSize)
	if k == n-1 {
		if rem := v.expandedSize % uint64(v.blockSize); rem != 0 {
			unpackedLen = rem
		}
	}

	if packedLen > uint64(v.blockSize) {
		return nil, errors.Wrapf(ErrBlockOverlarge, "pblu: block %d packed length %d exceeds block size %d", k, packedLen, v.blockSize)
	}

	raw := make([]byte, packedLen)
	if _, err := io.ReadFull(io.NewSectionReader(v.packed, int64(packStart), int64(packedLen)), raw); err != nil {
		return nil, errors.Wrapf(err, "pblu: reading block %d", k)
	}

	if packedLen == unpackedLen {
		return raw, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(ErrInflateFailure, "pblu: block %d: %s", k, err)
	}
	defer zr.Close()

	out := make([]byte, unpackedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, errors.Wrapf(ErrInflateFailure, "pblu: block %d: %s", k, err)
	}

	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n > 0 {
		return nil, errors.Wrapf(ErrInflateFailure, "pblu: block %d inflated to more than %d bytes", k, unpackedLen)
	}

	return out, nil
}
