package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"todoboard/pkg/api"
	"todoboard/pkg/chart"
	tbl "todoboard/pkg/table"
	"todoboard/pkg/todo"
)

// DateLayout matches the TUI date cells
const DateLayout = "02 January 2006"

// ListOptions mirrors the ls flags
type ListOptions struct {
	DoneOnly    bool
	PendingOnly bool
	Filter      string
	Sort        string // "", "asc" or "desc"
	Page        int    // 1-based
	NoChart     bool
}

// ListState builds the table state the flags describe
func ListState(opts ListOptions, filteredRows int) (tbl.State, error) {
	s := tbl.Reduce(tbl.NewState(), tbl.SetFilter(opts.Filter))

	switch strings.ToLower(opts.Sort) {
	case "":
	case "asc":
		s = tbl.Reduce(s, tbl.ToggleSort(tbl.ColumnName))
	case "desc":
		s = tbl.Reduce(s, tbl.ToggleSort(tbl.ColumnName))
		s = tbl.Reduce(s, tbl.ToggleSort(tbl.ColumnName))
	default:
		return s, fmt.Errorf("unknown sort order %q (want asc or desc)", opts.Sort)
	}

	if opts.Page < 0 {
		return s, fmt.Errorf("page must be at least 1")
	}
	for i := 1; i < opts.Page; i++ {
		s = tbl.Reduce(s, tbl.NextPage(filteredRows))
	}
	return s, nil
}

// HandleList prints one page of todos, the pagination summary and the status chart
func HandleList(ctx context.Context, remote Remote, out io.Writer, opts ListOptions) error {
	items, err := remote.List(ctx, api.ListOptions{IsComplete: statusFlag(opts.DoneOnly, opts.PendingOnly)})
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	state, err := ListState(opts, tbl.FilteredCount(items, opts.Filter))
	if err != nil {
		return err
	}
	view := tbl.Project(items, state)

	if view.Empty() {
		fmt.Fprintln(out, "No results.")
	} else {
		fmt.Fprintln(out, RenderTable(view))
	}
	fmt.Fprintln(out, view.Summary())

	if !opts.NoChart {
		fmt.Fprintln(out)
		fmt.Fprintln(out, chart.Render(chart.Partition(items), 40))
	}
	return nil
}

// RenderTable draws the projected page with its visible columns
func RenderTable(view tbl.View) string {
	headers := make([]string, 0, len(view.Columns))
	for _, c := range view.Columns {
		if c == tbl.ColumnActions {
			headers = append(headers, "ID")
			continue
		}
		headers = append(headers, c.Title())
	}

	rows := make([][]string, 0, len(view.Rows))
	for _, it := range view.Rows {
		row := make([]string, 0, len(view.Columns))
		for _, c := range view.Columns {
			row = append(row, cell(c, it))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// The scriptable listing shows the id where the TUI offers row actions
func cell(c tbl.Column, it todo.Item) string {
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
		return it.ID
	}
	return ""
}
