package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageCursor identifies an adjacent page in a paginated response.
type PageCursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageInfo carries the next/prev cursors for the page envelope. A cursor is
// present only when the adjacent page exists.
type PageInfo struct {
	Next *PageCursor `json:"next,omitempty"`
	Prev *PageCursor `json:"prev,omitempty"`
}

// NormalizePage clamps page to a positive value, defaulting to 1.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizeLimit clamps limit to [1, MaxLimit], defaulting to 10.
func NormalizeLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset converts a page/limit pair to a row offset.
func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * NormalizeLimit(limit)
}

// Paginate computes the envelope for the given page against the total row
// count: next exists iff page*limit < total, prev iff page > 1.
func Paginate(page, limit int, total int64) PageInfo {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)

	var info PageInfo
	if int64(page*limit) < total {
		info.Next = &PageCursor{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		info.Prev = &PageCursor{Page: page - 1, Limit: limit}
	}
	return info
}
