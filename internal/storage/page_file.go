package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// PageFile is a handle to an open page file. The zero value is a closed handle
// that can be bound with Open.
type PageFile struct {
	fileName      string
	totalNumPages int
	curPagePos    int
	medium        Medium

	syncWrites bool
	log        logrus.FieldLogger
}

// Create creates a page file holding exactly one zero page.
// The file is not opened.
func Create(name string) error {
	if name == "" {
		return fmt.Errorf("create: empty file name: %w", ErrInvalidArgument)
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %v: %w", name, err, ErrNotFound)
	}

	n, err := file.Write(zeroPage[:])
	if n < PageSize {
		_ = file.Close()
		return fmt.Errorf("create %s: wrote %d of %d bytes: %v: %w", name, n, PageSize, err, ErrWriteFailed)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("create %s: %v: %w", name, err, ErrWriteFailed)
	}

	return nil
}

// Destroy removes a page file. Open handles on the file are not affected.
func Destroy(name string) error {
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("destroy %s: %v: %w", name, err, ErrNotFound)
	}
	return nil
}

// Open opens an existing page file for reading and writing.
func Open(name string) (*PageFile, error) {
	f := &PageFile{}
	if err := f.Open(name); err != nil {
		return nil, err
	}
	return f, nil
}

// OpenMedium binds a new handle to an already open medium. The handle owns the
// medium from here on, including on failure.
func OpenMedium(name string, m Medium) (*PageFile, error) {
	if m == nil {
		return nil, fmt.Errorf("open %s: nil medium: %w", name, ErrInvalidArgument)
	}

	f := &PageFile{}
	if err := f.bind(name, m); err != nil {
		return nil, err
	}
	return f, nil
}

// Open binds a closed handle to an existing page file.
func (f *PageFile) Open(name string) error {
	if f == nil {
		return fmt.Errorf("open %s: nil handle: %w", name, ErrInvalidArgument)
	}
	if name == "" {
		return fmt.Errorf("open: empty file name: %w", ErrInvalidArgument)
	}
	if f.medium != nil {
		return fmt.Errorf("open %s: handle already bound to %s: %w", name, f.fileName, ErrInvalidArgument)
	}

	file, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %v: %w", name, err, ErrNotFound)
	}

	return f.bind(name, file)
}

func (f *PageFile) bind(name string, m Medium) error {
	size, err := m.Seek(0, io.SeekEnd)
	if err != nil {
		_ = m.Close()
		return fmt.Errorf("open %s: %v: %w", name, err, ErrNotFound)
	}
	if _, err := m.Seek(0, io.SeekStart); err != nil {
		_ = m.Close()
		return fmt.Errorf("open %s: %v: %w", name, err, ErrNotFound)
	}

	if f.log == nil {
		f.log = discardLogger()
	}

	f.fileName = name
	// A trailing partial page is not counted.
	f.totalNumPages = int(size / PageSize)
	f.curPagePos = 0
	f.medium = m

	return nil
}

// Close releases the file. The handle can no longer be used for I/O until it is
// opened again.
func (f *PageFile) Close() error {
	if f == nil || f.medium == nil {
		return fmt.Errorf("close: %w", ErrHandleNotInitialized)
	}

	err := f.medium.Close()
	f.medium = nil
	f.totalNumPages = 0
	f.curPagePos = 0

	if err != nil {
		return fmt.Errorf("close %s: %w", f.fileName, err)
	}
	return nil
}

// FileName is the name the handle was opened with.
func (f *PageFile) FileName() string {
	return f.fileName
}

// TotalNumPages is the number of whole pages in the file.
func (f *PageFile) TotalNumPages() int {
	return f.totalNumPages
}

// CurPagePos is the page last read or written.
func (f *PageFile) CurPagePos() int {
	return f.curPagePos
}

// IsOpen reports whether the handle is bound to a file.
func (f *PageFile) IsOpen() bool {
	return f != nil && f.medium != nil
}

// ReadBlock reads page pageNum into buf, which must hold at least PageSize bytes.
func (f *PageFile) ReadBlock(pageNum int, buf []byte) error {
	if !f.IsOpen() {
		return fmt.Errorf("read page [%d]: %w", pageNum, ErrHandleNotInitialized)
	}
	if pageNum < 0 || pageNum >= f.totalNumPages {
		return pageOutOfRange(pageNum, f.totalNumPages)
	}
	if len(buf) < PageSize {
		return fmt.Errorf("read page [%d]: buffer of %d bytes: %w", pageNum, len(buf), ErrInvalidArgument)
	}

	if _, err := f.medium.Seek(PageOffset(pageNum), io.SeekStart); err != nil {
		return fmt.Errorf("read page [%d]: %w", pageNum, err)
	}

	n, err := io.ReadFull(f.medium, buf[:PageSize])
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		copy(buf[n:PageSize], zeroPage[n:])
	case err != nil:
		return fmt.Errorf("read page [%d]: %w", pageNum, err)
	}

	f.curPagePos = pageNum

	return nil
}

// ReadFirstBlock reads the first page.
func (f *PageFile) ReadFirstBlock(buf []byte) error {
	return f.ReadBlock(0, buf)
}

// ReadLastBlock reads the last page.
func (f *PageFile) ReadLastBlock(buf []byte) error {
	if !f.IsOpen() {
		return fmt.Errorf("read last page: %w", ErrHandleNotInitialized)
	}
	return f.ReadBlock(f.totalNumPages-1, buf)
}

// ReadCurrentBlock reads the page under the cursor.
func (f *PageFile) ReadCurrentBlock(buf []byte) error {
	if !f.IsOpen() {
		return fmt.Errorf("read current page: %w", ErrHandleNotInitialized)
	}
	return f.ReadBlock(f.curPagePos, buf)
}

// ReadPreviousBlock reads the page before the cursor.
func (f *PageFile) ReadPreviousBlock(buf []byte) error {
	if !f.IsOpen() {
		return fmt.Errorf("read previous page: %w", ErrHandleNotInitialized)
	}
	if f.curPagePos <= 0 {
		return pageOutOfRange(f.curPagePos-1, f.totalNumPages)
	}
	return f.ReadBlock(f.curPagePos-1, buf)
}

// ReadNextBlock reads the page after the cursor.
func (f *PageFile) ReadNextBlock(buf []byte) error {
	if !f.IsOpen() {
		return fmt.Errorf("read next page: %w", ErrHandleNotInitialized)
	}
	if f.curPagePos >= f.totalNumPages-1 {
		return pageOutOfRange(f.curPagePos+1, f.totalNumPages)
	}
	return f.ReadBlock(f.curPagePos+1, buf)
}

// WriteBlock overwrites page pageNum with buf. A buffer shorter than PageSize is
// zero padded and bytes past PageSize are ignored. The page count never changes.
func (f *PageFile) WriteBlock(pageNum int, buf []byte) error {
	if f == nil {
		return fmt.Errorf("write page [%d]: nil handle: %w", pageNum, ErrInvalidArgument)
	}
	if buf == nil {
		return fmt.Errorf("write page [%d]: nil buffer: %w", pageNum, ErrInvalidArgument)
	}
	if f.medium == nil {
		return fmt.Errorf("write page [%d]: %w", pageNum, ErrHandleNotInitialized)
	}
	if pageNum < 0 || pageNum >= f.totalNumPages {
		return pageOutOfRange(pageNum, f.totalNumPages)
	}

	return f.writePage(pageNum, buf)
}

// WriteCurrentBlock overwrites the page under the cursor with buf.
func (f *PageFile) WriteCurrentBlock(buf []byte) error {
	if f == nil {
		return fmt.Errorf("write current page: nil handle: %w", ErrInvalidArgument)
	}
	if buf == nil {
		return fmt.Errorf("write current page: nil buffer: %w", ErrInvalidArgument)
	}
	if f.medium == nil {
		return fmt.Errorf("write current page: %w", ErrHandleNotInitialized)
	}
	// an empty file has no current page
	if f.totalNumPages == 0 {
		return pageOutOfRange(f.curPagePos, f.totalNumPages)
	}

	return f.writePage(f.curPagePos, buf)
}

func (f *PageFile) writePage(pageNum int, buf []byte) error {
	page := buf
	if len(buf) < PageSize {
		var padded [PageSize]byte
		copy(padded[:], buf)
		page = padded[:]
	}

	if _, err := f.medium.Seek(PageOffset(pageNum), io.SeekStart); err != nil {
		return fmt.Errorf("write page [%d]: %v: %w", pageNum, err, ErrWriteFailed)
	}

	if n, err := f.medium.Write(page[:PageSize]); n < PageSize || err != nil {
		return fmt.Errorf("write page [%d]: wrote %d of %d bytes: %v: %w", pageNum, n, PageSize, err, ErrWriteFailed)
	}

	if err := f.sync(); err != nil {
		return err
	}

	f.curPagePos = pageNum

	return nil
}

// AppendEmptyBlock writes one zero page at the end of the file. The cursor does
// not move. On a short write the page count is unchanged, although the bytes that
// were written stay on the medium.
func (f *PageFile) AppendEmptyBlock() error {
	if !f.IsOpen() {
		return fmt.Errorf("append page: %w", ErrHandleNotInitialized)
	}

	if _, err := f.medium.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("append page: %v: %w", err, ErrWriteFailed)
	}

	if n, err := f.medium.Write(zeroPage[:]); n < PageSize || err != nil {
		return fmt.Errorf("append page: wrote %d of %d bytes: %v: %w", n, PageSize, err, ErrWriteFailed)
	}

	if err := f.sync(); err != nil {
		return err
	}

	f.totalNumPages++
	f.log.WithField("pages", f.totalNumPages).Debug("appended empty page")

	return nil
}

// EnsureCapacity grows the file with zero pages until it holds at least
// numberOfPages pages. Growth stops at the first failure, so a failed call can
// still leave the file larger than it was.
func (f *PageFile) EnsureCapacity(numberOfPages int) error {
	if !f.IsOpen() {
		return fmt.Errorf("ensure capacity: %w", ErrHandleNotInitialized)
	}
	if f.totalNumPages >= numberOfPages {
		return nil
	}

	f.log.WithFields(logrus.Fields{
		"pages": f.totalNumPages,
		"want":  numberOfPages,
	}).Debug("growing page file")

	for missing := numberOfPages - f.totalNumPages; missing > 0; missing-- {
		if err := f.AppendEmptyBlock(); err != nil {
			return err
		}
	}

	// Only reachable if AppendEmptyBlock ever reports success without adding
	// exactly one page.
	if f.totalNumPages != numberOfPages {
		return fmt.Errorf("ensure capacity: have %d pages, want %d: %w", f.totalNumPages, numberOfPages, ErrWriteFailed)
	}

	return nil
}

func (f *PageFile) sync() error {
	if !f.syncWrites {
		return nil
	}

	s, ok := f.medium.(syncer)
	if !ok {
		return nil
	}

	if err := s.Sync(); err != nil {
		return fmt.Errorf("sync %s: %v: %w", f.fileName, err, ErrWriteFailed)
	}

	return nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
