package rowmodel

import "fmt"

// Window selects a contiguous range of rows.
type Window struct {
	Offset int // rows to skip
	Limit  int // rows to keep; 0 keeps the rest
}

// Validate rejects negative bounds.
func (w Window) Validate() error {
	if w.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", w.Offset)
	}
	if w.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", w.Limit)
	}
	return nil
}

// Paginate returns the rows inside the window. Windows past the end yield an
// empty slice.
func Paginate[R any](rows []R, w Window) []R {
	length := len(rows)
	start := min(max(w.Offset, 0), length)
	end := length
	if w.Limit > 0 {
		end = min(start+w.Limit, length)
	}
	return rows[start:end]
}

// PageCount is the number of pages needed for n rows. Zero rows means zero
// pages.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
