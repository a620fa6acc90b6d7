//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Map maps the file at path into memory read-only and returns its contents.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, syscall.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}

func mapRW(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// flushRange msyncs the pages covering [off, off+n). msync requires a
// page-aligned start address.
func flushRange(_ *os.File, data []byte, off, n int) error {
	page := unix.Getpagesize()
	start := off &^ (page - 1)
	return unix.Msync(data[start:off+n], unix.MS_SYNC)
}

func syncFile(f *os.File) error {
	return unix.Fsync(int(f.Fd()))
}

func unmap(_ *os.File, data []byte) error {
	return unix.Munmap(data)
}
