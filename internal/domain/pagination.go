package domain

import "fmt"

// Page is one bounded slice of an ordered result.
type Page struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	TotalCount int    `json:"totalCount"`
}

// TotalPages returns ceil(totalCount/pageSize). An empty result has zero pages.
func TotalPages(totalCount, pageSize int) int {
	mustPositivePageSize(pageSize)
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// ClampPage clamps page into [1, TotalPages]. An empty result clamps to 1.
func ClampPage(page, totalCount, pageSize int) int {
	last := TotalPages(totalCount, pageSize)
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page of items. Out of range pages are
// clamped, so a request past the end yields the last page rather than
// an empty one. pageSize must be positive.
func Paginate(items []Item, page, pageSize int) Page {
	total := len(items)
	page = ClampPage(page, total, pageSize)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	pageItems := make([]Item, 0, end-start)
	if start < end {
		pageItems = append(pageItems, items[start:end]...)
	}

	return Page{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
		TotalCount: total,
	}
}

// Window returns up to size items starting at offset, for carousel views.
// The offset is clamped so the window stays full whenever enough items exist.
func Window(items []Item, offset, size int) []Item {
	mustPositivePageSize(size)
	if len(items) == 0 {
		return []Item{}
	}
	if offset > len(items)-size {
		offset = len(items) - size
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return append([]Item(nil), items[offset:end]...)
}

// mustPositivePageSize panics on a caller defect; page sizes are never user input.
func mustPositivePageSize(pageSize int) {
	if pageSize <= 0 {
		panic(fmt.Sprintf("domain: page size must be positive, got %d", pageSize))
	}
}
