// Package mmapfile maps whole files into memory read-only.
package mmapfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// File is a read-only mapping of a file.
type File struct {
	path string
	data mmap.MMap
}

// Open maps the file at path. Empty files yield a File with no mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "mmapfile: open")
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "mmapfile: stat %s", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, errors.Errorf("mmapfile: %s is not a regular file", path)
	}
	if fi.Size() == 0 {
		return &File{path: path}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mmapfile: map %s", path)
	}
	return &File{path: path, data: data}, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Bytes returns the mapped contents. The slice is read-only and must not be
// used after Close.
func (f *File) Bytes() []byte { return f.data }

// Len returns the size of the mapping.
func (f *File) Len() int { return len(f.data) }

// Close unmaps the file.
func (f *File) Close() error {
	if f == nil || f.data == nil {
		return nil
	}
	err := f.data.Unmap()
	f.data = nil
	return errors.Wrapf(err, "mmapfile: unmap %s", f.path)
}
