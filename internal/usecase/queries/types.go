package queries

import (
	"shareit/internal/pkg/errs"
)

var ErrInvalidPage = errs.New("invalid pagination window")

const maxPageSize = 20

// Page is an offset window over a listing. Rows are grouped into pages of
// Size elements and the page containing offset From is returned whole, so
// the effective offset is (From/Size)*Size. The zero Page disables
// windowing entirely.
type Page struct {
	From int
	Size int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 || size < 1 || size > maxPageSize {
		return Page{}, ErrInvalidPage
	}
	return Page{From: from, Size: size}, nil
}

// Unpaged returns the whole listing as one result.
func Unpaged() Page {
	return Page{}
}

func (p Page) isUnpaged() bool {
	return p.Size < 1
}

func paginate[T any](rows []T, page Page) []T {
	if page.isUnpaged() {
		return rows
	}
	offset := (page.From / page.Size) * page.Size
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + page.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
