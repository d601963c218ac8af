// Package pager computes what pagination controls show: the window of page buttons, the
// ellipses around it and the "Showing X to Y of N" summary.
package pager

import (
	"fmt"
	"strconv"
)

// MaxPageButtons is the widest window of numbered page buttons.
const MaxPageButtons = 5

// PageSizeOptions are the page sizes offered to the user.
var PageSizeOptions = []int{10, 20, 50, 100}

// Layout describes pagination controls for one grid state. The zero value means no controls
// are shown.
type Layout struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int

	// Pages are the numbered buttons, in order.
	Pages         []int
	StartEllipsis bool
	EndEllipsis   bool

	// StartItem and EndItem are the 1-based positions of the first and last row on the page.
	StartItem int
	EndItem   int
}

// New computes the layout for a page. Nothing is shown when there are no rows.
func New(page, pageSize, totalCount int) Layout {
	if totalCount <= 0 || pageSize <= 0 {
		return Layout{}
	}
	if page < 1 {
		page = 1
	}

	totalPages := TotalPages(totalCount, pageSize)
	l := Layout{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
	if page > totalPages {
		l.StartItem, l.EndItem = totalCount+1, totalCount
	} else {
		before := (page - 1) * pageSize
		l.StartItem = before + 1
		l.EndItem = before + min(pageSize, totalCount-before)
	}

	if totalPages <= MaxPageButtons {
		l.Pages = pageRange(1, totalPages)
		return l
	}

	// the window of a page past the end is the window of the last page
	cur := min(page, totalPages)
	start := max(1, cur-2)
	end := min(totalPages, cur+2)
	if end-start+1 < MaxPageButtons {
		if start == 1 {
			end = min(totalPages, start+MaxPageButtons-1)
		} else if end == totalPages {
			start = max(1, end-MaxPageButtons+1)
		}
	}
	l.Pages = pageRange(start, end)
	l.StartEllipsis = start > 1
	l.EndEllipsis = end < totalPages
	return l
}

// TotalPages is the number of pages needed for totalCount rows.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount-1)/pageSize + 1
}

func pageRange(start, end int) []int {
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// Visible reports whether controls should be rendered at all.
func (l Layout) Visible() bool {
	return l.TotalCount > 0
}

// HasPrev reports whether the first and previous buttons are enabled.
func (l Layout) HasPrev() bool {
	return l.Page > 1
}

// HasNext reports whether the next and last buttons are enabled.
func (l Layout) HasNext() bool {
	return l.Page < l.TotalPages
}

// Summary renders "Showing X to Y of N items" with N grouped by thousands. An empty label
// defaults to "items".
func (l Layout) Summary(labelPlural string) string {
	if labelPlural == "" {
		labelPlural = "items"
	}
	return fmt.Sprintf("Showing %d to %d of %s %s", l.StartItem, l.EndItem, groupThousands(l.TotalCount), labelPlural)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	out := s[:head]
	for i := head; i < len(s); i += 3 {
		out += "," + s[i:i+3]
	}
	return out
}
