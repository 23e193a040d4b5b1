package pblu

import (
	"github.com/cockroachdb/errors"
)

const maxDirectoryDepth = 128

// File is a named leaf in the archive tree. Size is the on-disk
// file_entry.size — the packed size, not the decompressed size for a
// ZLIB payload (see FileDataView.Size).
type File struct {
	name  string
	entry fileTableEntry
}

// Name returns the file's name as decoded from its name-table entry.
func (f *File) Name() string { return f.name }

// Size returns the on-disk file_entry.size. For a ZLIB-compressed
// payload this is the packed size; use an opened FileDataView's Size
// for the decompressed size.
func (f *File) Size() uint32 { return f.entry.size }

// PackedSize is an alias for Size, named to make the packed-vs-decompressed
// distinction explicit at call sites that also use FileDataView.Size.
func (f *File) PackedSize() uint32 { return f.entry.size }

// Directory is a node in the resolved archive tree. The root directory
// (file-table index 1) has no name; every other directory does.
type Directory struct {
	name  *string
	entry fileTableEntry

	files []*File
	dirs  []*Directory
}

// Name returns the directory's name, or false for the root directory.
func (d *Directory) Name() (string, bool) {
	if d.name == nil {
		return "", false
	}
	return *d.name, true
}

// Files returns the directory's files in name-table order.
func (d *Directory) Files() []*File { return d.files }

// Subdirectories returns the directory's child directories in
// name-table order.
func (d *Directory) Subdirectories() []*Directory { return d.dirs }

// Walk calls fn once for the directory itself and then recursively for
// every subdirectory, depth-first, in name-table order. path is built
// with "/" separators starting from the empty string at the root. Walk
// stops and returns fn's error as soon as fn returns a non-nil error.
func (d *Directory) Walk(fn func(path string, dir *Directory) error) error {
	return d.walk("", fn)
}

func (d *Directory) walk(path string, fn func(string, *Directory) error) error {
	if err := fn(path, d); err != nil {
		return err
	}
	for _, sub := range d.dirs {
		subPath := joinPath(path, *sub.name)
		if err := sub.walk(subPath, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkFiles calls fn for every file in the tree, depth-first, with the
// same path convention as Walk. A directory's own files are visited, in
// name-table order, before the files of any of its subdirectories, even
// where a subdirectory's entry precedes them in the name table.
func (d *Directory) WalkFiles(fn func(path string, file *File) error) error {
	return d.Walk(func(path string, dir *Directory) error {
		for _, f := range dir.files {
			if err := fn(joinPath(path, f.name), f); err != nil {
				return err
			}
		}
		return nil
	})
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// resolveTree builds the full in-memory directory tree rooted at
// file-table index 1.
func resolveTree(c *containerReader) (*Directory, error) {
	r := &resolver{c: c}
	return r.resolveDirectory(1, nil)
}

// resolver carries the in-progress path stack used for the cycle and
// depth guards across the recursive descent.
type resolver struct {
	c    *containerReader
	path []uint32
}

func (r *resolver) resolveDirectory(index uint32, name *string) (*Directory, error) {
	if len(r.path) >= maxDirectoryDepth {
		return nil, errors.Wrapf(ErrDepthExceeded, "pblu: resolving directory index %d", index)
	}
	for _, seen := range r.path {
		if seen == index {
			return nil, errors.Wrapf(ErrDirectoryCycle, "pblu: directory index %d revisited", index)
		}
	}

	entry, err := r.c.readFileEntry(index)
	if err != nil {
		return nil, errors.Wrapf(err, "pblu: resolving directory index %d", index)
	}

	r.path = append(r.path, index)
	defer func() { r.path = r.path[:len(r.path)-1] }()

	dir := &Directory{name: name, entry: entry}

	max := uint64(entry.offset) + uint64(entry.size)
	cur := uint64(entry.offset)

	for cur < max {
		nameEntry, err := r.c.readNameEntry(cur)
		if err != nil {
			return nil, errors.Wrapf(err, "pblu: reading directory index %d at %#x", index, cur)
		}
		if cur+uint64(nameEntry.entrySize) > max {
			return nil, errors.Wrapf(ErrNameEntrySpanOverrun, "pblu: directory index %d entry at %#x", index, cur)
		}

		childEntry, err := r.c.readFileEntry(nameEntry.fileIndex)
		if err != nil {
			return nil, errors.Wrapf(err, "pblu: directory index %d child index %d", index, nameEntry.fileIndex)
		}

		switch nameEntry.kind {
		case kindFile:
			dir.files = append(dir.files, &File{name: nameEntry.name, entry: childEntry})
		case kindDirectory:
			childName := nameEntry.name
			child, err := r.resolveDirectory(nameEntry.fileIndex, &childName)
			if err != nil {
				return nil, err
			}
			dir.dirs = append(dir.dirs, child)
		default:
			// readNameEntry already rejects any other kind.
			return nil, errors.Wrapf(ErrUnknownKind, "pblu: directory index %d entry at %#x", index, cur)
		}

		cur += uint64(nameEntry.entrySize)
	}

	return dir, nil
}
