package table

import (
	"fmt"
	"sort"
	"strings"

	"todoboard/pkg/todo"
)

// View is the projection of a list through a State
type View struct {
	Rows      []todo.Item // the current page
	Total     int         // rows before filtering
	Filtered  int         // rows after filtering
	PageIndex int
	PageCount int
	CanPrev   bool
	CanNext   bool
	Columns   []Column
}

// Summary is the pagination caption, e.g. "1 of 2 page(s) showing."
func (v View) Summary() string {
	return fmt.Sprintf("%d of %d page(s) showing.", v.PageIndex+1, v.PageCount)
}

// Empty reports whether there is nothing to show on the page
func (v View) Empty() bool { return len(v.Rows) == 0 }

// Project filters, sorts and pages items according to s. items is not modified.
func Project(items []todo.Item, s State) View {
	filtered := FilterItems(items, s.Filter)
	sorted := SortItems(filtered, s.Sort)

	size := s.pageSize()
	count := PageCount(len(sorted), size)

	page := s.PageIndex
	if page > count-1 {
		page = count - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * size
	end := start + size
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return View{
		Rows:      sorted[start:end],
		Total:     len(items),
		Filtered:  len(sorted),
		PageIndex: page,
		PageCount: count,
		CanPrev:   page > 0,
		CanNext:   page < count-1,
		Columns:   s.VisibleColumns(),
	}
}

// FilterItems keeps the items whose name contains text, ignoring case.
// An empty filter keeps everything.
func FilterItems(items []todo.Item, text string) []todo.Item {
	out := make([]todo.Item, 0, len(items))
	if text == "" {
		return append(out, items...)
	}

	needle := strings.ToLower(text)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}

// FilteredCount is len(FilterItems(items, text)) without the allocation
func FilteredCount(items []todo.Item, text string) int {
	if text == "" {
		return len(items)
	}
	needle := strings.ToLower(text)
	n := 0
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			n++
		}
	}
	return n
}

// SortItems returns a sorted copy. Equal keys keep their fetch order, and no
// sort spec means fetch order.
func SortItems(items []todo.Item, specs []SortSpec) []todo.Item {
	sorted := make([]todo.Item, len(items))
	copy(sorted, items)
	if len(specs) == 0 {
		return sorted
	}

	spec := specs[0]
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if spec.Desc {
			a, b = b, a
		}
		return less(spec.Column, a, b)
	})
	return sorted
}

func less(c Column, a, b todo.Item) bool {
	switch c {
	case ColumnName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case ColumnStatus:
		return !a.IsComplete && b.IsComplete // unfinished first
	case ColumnCreated:
		return a.CreatedAt.Before(b.CreatedAt)
	case ColumnUpdated:
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
	return false
}
