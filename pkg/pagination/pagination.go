package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Query holds validated listing parameters parsed from the request.
type Query struct {
	Search     string
	PageSize   int
	PageNumber int
	SortBy     string
	OrderBy    string
}

// Parse extracts search, paging and sorting controls from query parameters.
// Page numbers are 1-based; orderBy falls back to ascending unless it is
// exactly "asc" or "desc".
func Parse(c *gin.Context) Query {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", strconv.Itoa(DefaultPageNumber)))

	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	orderBy := c.DefaultQuery("orderBy", "asc")
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = "asc"
	}

	return Query{
		Search:     c.Query("search"),
		PageSize:   pageSize,
		PageNumber: pageNumber,
		SortBy:     c.DefaultQuery("sortBy", "name"),
		OrderBy:    orderBy,
	}
}

// Offset returns the number of records to skip for the current page.
func (q Query) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// TotalPages computes the page count by ceiling division.
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
