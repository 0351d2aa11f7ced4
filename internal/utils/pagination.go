package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxLimit = 100

// maxPage keeps (page-1)*limit inside int.
const maxPage = math.MaxInt / maxLimit

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}

// Paginate returns the page of items described by pg.
func Paginate[T any](items []T, pg Pagination) []T {
	if pg.Offset < 0 || pg.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if pg.Limit > 0 && pg.Limit < end-pg.Offset {
		end = pg.Offset + pg.Limit
	}
	return items[pg.Offset:end]
}
