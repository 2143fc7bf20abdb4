package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/blogem/reqsink/models"
)

// PageSize is the number of requests shown per admin page
const PageSize = 10

// ParseStart reads the admin start parameter; anything that is not a
// non-negative integer counts as 0
func ParseStart(raw string) int {
	start, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || start < 0 {
		return 0
	}
	return start
}

// Paginate computes the window of at most PageSize requests ending start
// requests back from the newest of size held requests
func Paginate(size, start int) models.Window {
	if start < 0 {
		start = 0
	}
	if start > math.MaxInt-PageSize {
		start = math.MaxInt - PageSize
	}

	end := max(0, size-start)
	windowStart := max(0, end-PageSize)

	return models.Window{
		Start:         start,
		End:           end,
		WindowStart:   windowStart,
		NextPageStart: start + PageSize,
		TotalCount:    size,
	}
}
