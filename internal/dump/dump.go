// Package dump copies the pages of a page file to and from a SQL table.
package dump

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/joeandaverde/pagefile/internal/storage"
)

// maxPageNumber bounds imported page numbers so the file size stays addressable.
const maxPageNumber = math.MaxInt32 - 1

const createPagesTable = `CREATE TABLE IF NOT EXISTS pages (
	page_no INTEGER PRIMARY KEY,
	data BLOB NOT NULL
)`

// Export writes every page of f into the pages table of db, replacing rows with
// the same page number. It walks the file with the cursor, so on return the
// cursor is on the last page.
func Export(ctx context.Context, f *storage.PageFile, db *sql.DB) (int, error) {
	if !f.IsOpen() {
		return 0, fmt.Errorf("export: %w", storage.ErrHandleNotInitialized)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createPagesTable); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR REPLACE INTO pages (page_no, data) VALUES (?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	if f.TotalNumPages() == 0 {
		return 0, tx.Commit()
	}

	buf := make([]byte, storage.PageSize)
	if err := f.ReadFirstBlock(buf); err != nil {
		return 0, err
	}

	written := 0
	for {
		if _, err := stmt.ExecContext(ctx, f.CurPagePos(), buf); err != nil {
			return 0, fmt.Errorf("export page [%d]: %w", f.CurPagePos(), err)
		}
		written++

		if f.CurPagePos() >= f.TotalNumPages()-1 {
			break
		}
		if err := f.ReadNextBlock(buf); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return written, nil
}

// Import writes the rows of the pages table in db into f, growing f so the
// highest page number fits. Pages without a row are left untouched.
func Import(ctx context.Context, db *sql.DB, f *storage.PageFile) (int, error) {
	if !f.IsOpen() {
		return 0, fmt.Errorf("import: %w", storage.ErrHandleNotInitialized)
	}

	rows, err := db.QueryContext(ctx, "SELECT page_no, data FROM pages ORDER BY page_no")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type page struct {
		number int
		data   []byte
	}

	// Validate every row before the file is touched.
	var pages []page
	for rows.Next() {
		var number int64
		var p page
		if err := rows.Scan(&number, &p.data); err != nil {
			return 0, err
		}
		if number < 0 || number > maxPageNumber {
			return 0, fmt.Errorf("import page [%d]: %w", number, storage.ErrPageOutOfRange)
		}
		p.number = int(number)
		if len(p.data) > storage.PageSize {
			return 0, fmt.Errorf("import page [%d]: %d bytes: %w", p.number, len(p.data), storage.ErrInvalidArgument)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if len(pages) == 0 {
		return 0, nil
	}

	// rows are ordered, so the last one holds the highest page number
	if err := f.EnsureCapacity(pages[len(pages)-1].number + 1); err != nil {
		return 0, err
	}

	for i, p := range pages {
		if p.data == nil {
			p.data = []byte{}
		}
		if err := f.WriteBlock(p.number, p.data); err != nil {
			return i, err
		}
	}

	return len(pages), nil
}
