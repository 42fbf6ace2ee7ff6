package table

// ActionKind enumerates the transitions of the table state
type ActionKind int

const (
	ActionSetFilter ActionKind = iota
	ActionToggleSort
	ActionNextPage
	ActionPrevPage
	ActionSetVisible
	ActionToggleVisible
	ActionClamp
)

// Action is one user (or reload) event applied by Reduce
type Action struct {
	Kind    ActionKind
	Column  Column
	Text    string
	Visible bool
	Rows    int // ActionNextPage and ActionClamp: number of filtered rows
}

// SetFilter replaces the name filter text
func SetFilter(text string) Action { return Action{Kind: ActionSetFilter, Text: text} }

// ToggleSort cycles the sort of column c: none, ascending, descending, none
func ToggleSort(c Column) Action { return Action{Kind: ActionToggleSort, Column: c} }

// NextPage advances one page when filteredRows leaves one to go to
func NextPage(filteredRows int) Action { return Action{Kind: ActionNextPage, Rows: filteredRows} }

// PrevPage goes back one page
func PrevPage() Action { return Action{Kind: ActionPrevPage} }

// SetVisible shows or hides column c
func SetVisible(c Column, visible bool) Action {
	return Action{Kind: ActionSetVisible, Column: c, Visible: visible}
}

// ToggleVisible flips the visibility of column c
func ToggleVisible(c Column) Action { return Action{Kind: ActionToggleVisible, Column: c} }

// Clamp pulls the page index back inside the page range for filteredRows,
// used after the list is reloaded
func Clamp(filteredRows int) Action { return Action{Kind: ActionClamp, Rows: filteredRows} }

// Reduce applies a to s and returns the new state. s is not modified.
func Reduce(s State, a Action) State {
	next := s.clone()
	if next.PageSize <= 0 {
		next.PageSize = DefaultPageSize
	}

	switch a.Kind {
	case ActionSetFilter:
		if a.Text == s.Filter {
			return next
		}
		next.Filter = a.Text
		next.PageIndex = 0

	case ActionToggleSort:
		if !a.Column.CanSort() {
			return next
		}
		switch s.SortOf(a.Column) {
		case Unsorted:
			next.Sort = []SortSpec{{Column: a.Column}}
		case Ascending:
			next.Sort = []SortSpec{{Column: a.Column, Desc: true}}
		case Descending:
			next.Sort = nil
		}
		next.PageIndex = 0

	case ActionNextPage:
		if next.PageIndex < PageCount(a.Rows, next.PageSize)-1 {
			next.PageIndex++
		}

	case ActionPrevPage:
		if next.PageIndex > 0 {
			next.PageIndex--
		}

	case ActionSetVisible:
		next = setVisible(next, a.Column, a.Visible)

	case ActionToggleVisible:
		next = setVisible(next, a.Column, !s.Visible(a.Column))

	case ActionClamp:
		if last := PageCount(a.Rows, next.PageSize) - 1; next.PageIndex > last {
			next.PageIndex = last
		}
		if next.PageIndex < 0 {
			next.PageIndex = 0
		}
	}
	return next
}

func setVisible(s State, c Column, visible bool) State {
	if !c.CanHide() {
		return s
	}
	if visible {
		delete(s.Hidden, c)
		return s
	}
	if s.Hidden == nil {
		s.Hidden = make(map[Column]bool)
	}
	s.Hidden[c] = true
	return s
}

// PageCount is ceil(rows/pageSize), never less than 1
func PageCount(rows, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if rows <= 0 {
		return 1
	}
	return (rows + pageSize - 1) / pageSize
}
