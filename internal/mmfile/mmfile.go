// Package mmfile provides platform-specific helpers for memory-mapping media
// image files.
//
// Create returns a read/write Mapping of a new fixed-size file. On unix the
// file is mapped MAP_SHARED and flushed with msync; elsewhere the contents are
// buffered in memory and written back with WriteAt on Flush.
//
// A Mapping is NOT thread-safe.
package mmfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrClosed is returned by operations on a closed Mapping.
var ErrClosed = errors.New("mmfile: mapping closed")

// Mapping is a read/write view of a fixed-size file.
type Mapping struct {
	f    *os.File
	data []byte
}

// Create creates a new file of exactly size bytes at path and maps it
// read/write. An existing file at path is an error.
func Create(path string, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmfile: invalid size %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	data, err := mapRW(f, size)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	return &Mapping{f: f, data: data}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the mapping size, 0 after Close.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Name returns the path of the underlying file.
func (m *Mapping) Name() string {
	return m.f.Name()
}

// Flush writes the byte range [off, off+n) back to the file.
func (m *Mapping) Flush(off, n int) error {
	if m.data == nil {
		return ErrClosed
	}
	if off < 0 || n < 0 || off+n > len(m.data) {
		return fmt.Errorf("mmfile: flush range [%d, %d) outside mapping of %d bytes", off, off+n, len(m.data))
	}
	if n == 0 {
		return nil
	}
	return flushRange(m.f, m.data, off, n)
}

// Sync commits file data to stable storage.
func (m *Mapping) Sync() error {
	if m.data == nil {
		return ErrClosed
	}
	return syncFile(m.f)
}

// Close unmaps and closes the file. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unmap(m.f, m.data)
	m.data = nil
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
