// Package storage presents a file as an ordered sequence of fixed-size pages.
//
// Page i of a page file occupies bytes [i*PageSize, (i+1)*PageSize). There is no
// header, no metadata and no checksum.
package storage

import (
	"errors"
	"fmt"
)

// PageSize is the size in bytes of every page.
const PageSize = 4096

var (
	// ErrInvalidArgument a required name, handle or buffer is absent
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound the backing file is missing or cannot be created, opened or removed
	ErrNotFound = errors.New("file not found")

	// ErrHandleNotInitialized the handle was never opened or is already closed
	ErrHandleNotInitialized = errors.New("file handle not initialized")

	// ErrPageOutOfRange the page index is negative or past the last page
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrWriteFailed the medium accepted fewer bytes than a full page
	ErrWriteFailed = errors.New("write failed")
)

// zeroPage is the source for every freshly created or appended page.
var zeroPage [PageSize]byte

// PageOffset is the byte offset of a page in a page file.
func PageOffset(page int) int64 {
	return int64(page) * PageSize
}

func pageOutOfRange(page, total int) error {
	return fmt.Errorf("page [%d] of [%d]: %w", page, total, ErrPageOutOfRange)
}
