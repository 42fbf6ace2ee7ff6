// Package table derives the visible page of todos from the fetched list and the
// user-controlled filter, sort, pagination and column visibility state.
package table

// DefaultPageSize is the fixed number of rows per page
const DefaultPageSize = 5

// Column identifies a table column by its wire field name
type Column string

const (
	ColumnName    Column = "todoName"
	ColumnStatus  Column = "isComplete"
	ColumnCreated Column = "createdAt"
	ColumnUpdated Column = "updatedAt"
	ColumnActions Column = "actions"
)

// Columns lists every column in display order
var Columns = []Column{ColumnName, ColumnStatus, ColumnCreated, ColumnUpdated, ColumnActions}

// Title is the header label of the column
func (c Column) Title() string {
	switch c {
	case ColumnName:
		return "Name"
	case ColumnStatus:
		return "Status"
	case ColumnCreated:
		return "Created Date"
	case ColumnUpdated:
		return "Updated Date"
	case ColumnActions:
		return "Actions"
	}
	return string(c)
}

// CanHide reports whether the column can be toggled off
func (c Column) CanHide() bool { return c != ColumnActions }

// CanSort reports whether activating the header sorts by the column
func (c Column) CanSort() bool { return c == ColumnName }

// SortSpec is one sort key
type SortSpec struct {
	Column Column
	Desc   bool
}

// SortDirection is the display state of a column's sort
type SortDirection int

const (
	Unsorted SortDirection = iota
	Ascending
	Descending
)

// State is everything the user controls about the table. It is never persisted.
type State struct {
	Sort      []SortSpec
	Filter    string
	Hidden    map[Column]bool
	PageIndex int
	PageSize  int
}

// NewState returns the initial state: unsorted, unfiltered, first page
func NewState() State {
	return State{PageSize: DefaultPageSize}
}

// Visible reports whether column c is shown
func (s State) Visible(c Column) bool {
	return !s.Hidden[c]
}

// VisibleColumns returns the shown columns in display order
func (s State) VisibleColumns() []Column {
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if s.Visible(c) {
			out = append(out, c)
		}
	}
	return out
}

// SortOf returns how column c is currently sorted
func (s State) SortOf(c Column) SortDirection {
	for _, spec := range s.Sort {
		if spec.Column != c {
			continue
		}
		if spec.Desc {
			return Descending
		}
		return Ascending
	}
	return Unsorted
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// clone copies the reference fields so reductions never alias the previous state
func (s State) clone() State {
	out := s
	if s.Sort != nil {
		out.Sort = append([]SortSpec(nil), s.Sort...)
	}
	if s.Hidden != nil {
		out.Hidden = make(map[Column]bool, len(s.Hidden))
		for k, v := range s.Hidden {
			out.Hidden[k] = v
		}
	}
	return out
}
