package domain

// PaginationParams selects one page of a list response. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the 0-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Window returns the [lo, hi) bounds of the page within a list of total
// items. Pages past the end yield an empty window; a non-positive
// PageSize selects everything.
func (p PaginationParams) Window(total int) (lo, hi int) {
	if p.PageSize <= 0 {
		return 0, total
	}
	lo = min(p.Offset(), total)
	hi = min(lo+p.PageSize, total)
	return lo, hi
}
