//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

func mapRW(_ *os.File, size int) ([]byte, error) {
	return make([]byte, size), nil
}

func flushRange(f *os.File, data []byte, off, n int) error {
	_, err := f.WriteAt(data[off:off+n], int64(off))
	return err
}

func syncFile(f *os.File) error {
	return f.Sync()
}

// unmap writes the buffered contents back before the file is closed.
func unmap(f *os.File, data []byte) error {
	_, err := f.WriteAt(data, 0)
	return err
}
