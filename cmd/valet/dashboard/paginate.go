package dashboard

import "fmt"

// PageInfo describes a page of a list
type PageInfo struct {
	Page  int // 1-based, clamped to [1, Pages]
	Pages int
	From  int // 1-based index of the first item, 0 when empty
	To    int
	Total int
}

// String is the table footer ("11-20 of 42")
func (pi PageInfo) String() string {
	return fmt.Sprintf("%d-%d of %d", pi.From, pi.To, pi.Total)
}

// Paginate returns page (1-based) of items. Out-of-range pages are
// clamped, a size below 1 means "everything".
func Paginate[T any](items []T, page int, size int) ([]T, PageInfo) {
	total := len(items)
	if size < 1 {
		size = total
		if size == 0 {
			size = 1
		}
	}

	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	info := PageInfo{Page: page, Pages: pages, Total: total}
	if total == 0 {
		return []T{}, info
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	info.From = start + 1
	info.To = end
	return items[start:end], info
}
