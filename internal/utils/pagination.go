// Package utils holds the pagination helpers shared by the HTTP handlers and
// the services: query parsing with clamping, and page-to-offset math.
package utils

import "strconv"

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 6

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty or
// not an integer.
//
//	utils.AtoiDefault("42", 0) // 42
//	utils.AtoiDefault("x", 5)  // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParsePage reads the raw ?page and ?limit values. page is at least 1;
// limit defaults to defSize and is clamped to [1, maxSize].
func ParsePage(pageStr, limitStr string, defSize, maxSize int) (page, limit int) {
	page = AtoiDefault(pageStr, 1)
	if page < 1 {
		page = 1
	}
	limit = AtoiDefault(limitStr, defSize)
	if limit < 1 {
		limit = 1
	}
	if maxSize > 0 && limit > maxSize {
		limit = maxSize
	}
	return page, limit
}

// Offset converts a 1-based page into a row offset and limit.
func Offset(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}
