package pblu

import "github.com/cockroachdb/errors"

// Sentinel errors for the kinds named in the archive format's error model.
// Callers should use errors.Is against these; the concrete error returned
// from any operation is always wrapped with additional position context.
var (
	// ErrHeaderInvalid covers a bad magic, an unsupported header size, or a
	// file table that overlaps the header.
	ErrHeaderInvalid = errors.New("pblu: invalid header")

	// ErrIndexZero means a table reference used the reserved index 0.
	ErrIndexZero = errors.New("pblu: file-table index 0 is reserved")

	// ErrUnknownKind means a name entry's kind field was neither 0 (file)
	// nor 1 (directory).
	ErrUnknownKind = errors.New("pblu: unknown name-entry kind")

	// ErrNameEntrySpanOverrun means a name entry extends past its
	// containing directory's declared size.
	ErrNameEntrySpanOverrun = errors.New("pblu: name entry overruns directory span")

	// ErrDepthExceeded means the directory resolution path exceeded 128
	// entries.
	ErrDepthExceeded = errors.New("pblu: directory depth exceeds 128")

	// ErrDirectoryCycle means a directory's file-table index reappeared on
	// its own resolution path.
	ErrDirectoryCycle = errors.New("pblu: directory cycle")

	// ErrZlibHeaderInvalid means a ZLIB-variant payload's header magic
	// didn't match, its block size was 0 or exceeded 0x1000000, or its
	// block-offset table gave a block an end before its start.
	ErrZlibHeaderInvalid = errors.New("pblu: invalid ZLIB payload header")

	// ErrBlockOverlarge means a packed block's length exceeded the
	// declared block size.
	ErrBlockOverlarge = errors.New("pblu: packed block exceeds declared block size")

	// ErrSeekOutOfRange means a seek target fell outside [0, size].
	ErrSeekOutOfRange = errors.New("pblu: seek target out of range")

	// ErrInflateFailure means DEFLATE decompression of a block failed, or
	// it produced a different byte count than the block's declared
	// unpacked length.
	ErrInflateFailure = errors.New("pblu: block inflate failure")
)
