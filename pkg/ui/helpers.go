package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"todoboard/pkg/events"
	"todoboard/pkg/modal"
	"todoboard/pkg/mutate"
	tbl "todoboard/pkg/table"
	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// DateLayout renders createdAt/updatedAt cells, e.g. "05 March 2024"
const DateLayout = "02 January 2006"

type listLoadedMsg mutate.Result

type eventMsg events.Event

type busClosedMsg struct{}

// mutationDoneMsg ends the in-flight indicator of a mutation; its outcome arrives on the bus
type mutationDoneMsg struct {
	op  events.Op
	err error
}

type toastTickMsg time.Time

// loadCmd starts a list load. Any load still in flight is cancelled.
func (m Model) loadCmd() tea.Cmd {
	gen, ctx := m.loader.Begin(m.ctx)
	loader := m.loader
	return func() tea.Msg {
		return listLoadedMsg(loader.Fetch(ctx, gen))
	}
}

// waitForEvent delivers the next bus event as a message
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return busClosedMsg{}
		}
		return eventMsg(e)
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func (m Model) createCmd(name string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		return mutationDoneMsg{op: events.OpCreate, err: svc.Create(context.Background(), name)}
	}
}

// dispatchCmd runs a confirmed dialog action
func (m Model) dispatchCmd(p modal.PendingAction) tea.Cmd {
	svc := m.service
	if p.Kind == modal.Update {
		return func() tea.Msg {
			return mutationDoneMsg{op: events.OpUpdate, err: svc.Complete(context.Background(), p.ID)}
		}
	}
	return func() tea.Msg {
		return mutationDoneMsg{op: events.OpDelete, err: svc.Delete(context.Background(), p.ID)}
	}
}

// apply runs a table action and re-projects the list
func (m *Model) apply(a tbl.Action) {
	m.state = tbl.Reduce(m.state, a)
	m.refresh()
}

// refresh projects the items through the table state and rebuilds the rows
func (m *Model) refresh() {
	m.view = tbl.Project(m.items, m.state)

	var columns []table.Column
	for _, c := range m.view.Columns {
		columns = append(columns, table.Column{Title: m.columnTitle(c), Width: columnWidth(c)})
	}

	rows := make([]table.Row, 0, len(m.view.Rows))
	for _, it := range m.view.Rows {
		row := make(table.Row, 0, len(m.view.Columns))
		for _, c := range m.view.Columns {
			row = append(row, fit(cellValue(c, it), columnWidth(c)))
		}
		rows = append(rows, row)
	}

	// Rows must never be wider than the columns while they are swapped
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)

	// The table parks its cursor at -1 while empty
	switch {
	case len(rows) == 0:
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) columnTitle(c tbl.Column) string {
	title := c.Title()
	switch m.state.SortOf(c) {
	case tbl.Ascending:
		title += " ↑"
	case tbl.Descending:
		title += " ↓"
	}
	return title
}

func columnWidth(c tbl.Column) int {
	switch c {
	case tbl.ColumnName:
		return 32
	case tbl.ColumnStatus:
		return 10
	case tbl.ColumnCreated, tbl.ColumnUpdated:
		return 18
	default:
		return 16
	}
}

func cellValue(c tbl.Column, it todo.Item) string {
	switch c {
	case tbl.ColumnName:
		return it.Name
	case tbl.ColumnStatus:
		return it.StatusLabel()
	case tbl.ColumnCreated:
		return formatDate(it.CreatedAt)
	case tbl.ColumnUpdated:
		return formatDate(it.UpdatedAt)
	case tbl.ColumnActions:
		var labels []string
		for _, k := range modal.ActionsFor(it) {
			labels = append(labels, k.MenuLabel())
		}
		return strings.Join(labels, " / ")
	}
	return ""
}

// fit shortens s to width cells, marking the cut with an ellipsis
func fit(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DateLayout)
}

// selectedItem returns the item under the cursor on the current page
func (m Model) selectedItem() (todo.Item, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view.Rows) {
		return todo.Item{}, false
	}
	return m.view.Rows[idx], true
}

// hideableColumns are the entries of the column chooser
func hideableColumns() []tbl.Column {
	var cols []tbl.Column
	for _, c := range tbl.Columns {
		if c.CanHide() {
			cols = append(cols, c)
		}
	}
	return cols
}

// handleLoaded stores a finished load unless a newer one superseded it
func (m *Model) handleLoaded(r mutate.Result) {
	if !m.loader.IsCurrent(r) {
		utils.Log("dropping stale list result", "generation", r.Generation)
		return
	}
	if r.Err != nil {
		m.loadErr = r.Err
		utils.Warn("list load failed", "err", r.Err)
		return
	}
	m.loadErr = nil
	m.items = r.Items
	m.state = tbl.Reduce(m.state, tbl.Clamp(tbl.FilteredCount(m.items, m.state.Filter)))
	m.refresh()
}
