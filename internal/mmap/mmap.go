// Package mmap provides read-only memory-mapped file access.
//
// The catalog's flat metadata files are scanned byte-wise on every lookup;
// mapping them avoids copying file contents through read buffers. Mappings
// are safe for concurrent reads, and Close is idempotent, but callers must
// not touch Bytes() after Close returns.
package mmap

import (
	"os"
	"sync/atomic"
)

// Mapping is a read-only memory-mapped file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path into memory read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents. The slice is only valid until Close.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapping's length in bytes.
func (m *Mapping) Size() int {
	if m.closed.Load() {
		return 0
	}
	return len(m.data)
}

// Close unmaps the file. Calling it more than once is a no-op.
func (m *Mapping) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		err := m.unmap(m.data)
		m.data = nil
		return err
	}
	return nil
}
