package firmware

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is a firmware image that can be opened for streaming.
type File interface {
	// Name identifies the image in logs and callbacks
	Name() string

	// Length is the size of the image in bytes
	Length() int64

	// Open returns a new reader positioned at the start of the image
	Open() (io.ReadCloser, error)
}

// LocalFile is a firmware image stored on disk.
type LocalFile struct {
	path   string
	length int64
}

// Open stats the file at path and returns a LocalFile for it.
// The file is not kept open; every call to Open opens it again.
//
// Example:
//
//	fw, err := firmware.Open("BLUEMICROSYSTEM2.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d bytes\n", fw.Name(), fw.Length())
func Open(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &LocalFile{path: path, length: info.Size()}, nil
}

// Name returns the base name of the file.
func (f *LocalFile) Name() string { return filepath.Base(f.path) }

// Path returns the path the file was opened with.
func (f *LocalFile) Path() string { return f.path }

// Length returns the file size captured by Open.
func (f *LocalFile) Length() int64 { return f.length }

// Open opens the file for reading.
func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MemoryFile is a firmware image held in memory.
type MemoryFile struct {
	name string
	data []byte
}

// FromBytes wraps data as a firmware File. The slice is not copied.
func FromBytes(name string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, data: data}
}

// Name returns the name given to FromBytes.
func (f *MemoryFile) Name() string { return f.name }

// Length returns len(data).
func (f *MemoryFile) Length() int64 { return int64(len(f.data)) }

// Open returns a reader over the image.
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
