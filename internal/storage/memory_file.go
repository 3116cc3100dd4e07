package storage

import (
	"errors"
	"fmt"
	"io"
)

var errNoSpace = errors.New("no space left on medium")

// Medium is the resource a PageFile owns while open. *os.File satisfies it.
type Medium interface {
	io.ReadWriteSeeker
	io.Closer
}

type syncer interface {
	Sync() error
}

// MemoryFile is a Medium held in memory. A non-zero capacity bounds the number of
// bytes it will hold; writes past it are short.
type MemoryFile struct {
	data     []byte
	offset   int64
	capacity int
	closed   bool
	syncs    int
}

// NewMemoryFile creates an empty MemoryFile. A capacity of 0 is unbounded.
func NewMemoryFile(capacity int) *MemoryFile {
	return &MemoryFile{capacity: capacity}
}

// Bytes returns the contents of the medium.
func (m *MemoryFile) Bytes() []byte {
	return m.data
}

// Syncs reports how many times Sync was called.
func (m *MemoryFile) Syncs() int {
	return m.syncs
}

// Closed reports whether Close was called.
func (m *MemoryFile) Closed() bool {
	return m.closed
}

func (m *MemoryFile) Read(p []byte) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.offset >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.offset:])
	m.offset += int64(n)
	return n, nil
}

func (m *MemoryFile) Write(p []byte) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}

	want := m.offset + int64(len(p))
	var err error
	if m.capacity > 0 && want > int64(m.capacity) {
		want = int64(m.capacity)
		err = errNoSpace
	}
	if want <= m.offset {
		return 0, err
	}

	// crudely expand memory linearly
	if want > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, want-int64(len(m.data)))...)
	}

	n := copy(m.data[m.offset:want], p)
	m.offset += int64(n)
	return n, err
}

func (m *MemoryFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.offset + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.New("seek: negative position")
	}
	m.offset = abs
	return abs, nil
}

func (m *MemoryFile) Sync() error {
	m.syncs++
	return nil
}

func (m *MemoryFile) Close() error {
	if m.closed {
		return io.ErrClosedPipe
	}
	m.closed = true
	return nil
}

var _ Medium = (*MemoryFile)(nil)
