package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a normalized page request
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// New clamps page and limit into range and derives the offset
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Parse reads page and limit from the query string. Non-numeric values fall back to defaults.
func Parse(c *gin.Context) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = DefaultLimit
	}
	return New(page, limit)
}

// Window returns the [start, end) slice bounds of this page over n items.
// Pages past the end yield an empty window.
func (p Params) Window(n int) (start, end int) {
	if p.Offset >= n {
		return n, n
	}
	return p.Offset, min(p.Offset+p.Limit, n)
}

// TotalPages is the number of pages needed for total items
func (p Params) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}
