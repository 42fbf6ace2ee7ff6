package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"todoboard/pkg/chart"
	"todoboard/pkg/modal"
	"todoboard/pkg/notify"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar(" Todo Board "))
	if m.Busy() {
		sb.WriteString(" " + m.spinner.View())
	}
	sb.WriteString("\n\n")

	switch m.mode {
	case HelpViewMode:
		sb.WriteString(m.renderHelp())

	case CreateMode:
		sb.WriteString(m.renderForm())

	case ColumnsMode:
		sb.WriteString(m.renderColumnChooser())

	default:
		sb.WriteString(m.renderList())
		if m.mode == ConfirmMode {
			sb.WriteString("\n")
			sb.WriteString(m.renderDialog())
		}
	}

	if toasts := m.renderToasts(); toasts != "" {
		sb.WriteString("\n\n")
		sb.WriteString(toasts)
	}

	// Add help status bar at the bottom
	sb.WriteString("\n\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) titleBar(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1).
		Render(text)
}

// renderList renders the filter line, the table, pagination, errors and the chart
func (m Model) renderList() string {
	var sb strings.Builder
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.MutedTextColor))

	if m.mode == FilterMode {
		sb.WriteString(m.filterInput.View())
	} else if m.state.Filter != "" {
		sb.WriteString(muted.Render(fmt.Sprintf("Filter: %s", m.state.Filter)))
	} else {
		sb.WriteString(muted.Render("Filter todo name..."))
	}
	sb.WriteString("\n\n")

	if m.loadErr != nil {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(fmt.Sprintf("Error: %v", m.loadErr)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	if m.view.Empty() {
		sb.WriteString(muted.Render("No results."))
		sb.WriteString("\n")
	}

	// Pagination footer
	prev, next := "‹ Previous", "Next ›"
	enabled := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor))
	if m.view.CanPrev {
		prev = enabled.Render(prev)
	} else {
		prev = muted.Render(prev)
	}
	if m.view.CanNext {
		next = enabled.Render(next)
	} else {
		next = muted.Render(next)
	}
	sb.WriteString(fmt.Sprintf("%s   %s  %s", muted.Render(m.view.Summary()), prev, next))
	sb.WriteString("\n\n")

	width := m.width - 10
	if width > 60 || width <= 0 {
		width = 60
	}
	sb.WriteString(chart.RenderWith(chart.Partition(m.items), width, chart.Palette{
		Finish:   lipgloss.Color(m.styles.FinishColor),
		Unfinish: lipgloss.Color(m.styles.UnfinishColor),
		Muted:    lipgloss.Color(m.styles.MutedTextColor),
	}))

	return sb.String()
}

// renderDialog renders the pending confirmation
func (m Model) renderDialog() string {
	if !m.dialog.Confirming() {
		return ""
	}
	p := m.dialog.Pending()

	title := lipgloss.NewStyle().Bold(true).Render(p.Kind.Title())
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.MutedTextColor)).Render(p.Kind.Description())

	btnColor := m.styles.AccentColor
	if p.Kind == modal.Delete {
		btnColor = m.styles.ErrorColor
	}
	confirm := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(btnColor)).
		Padding(0, 1).
		Render(fmt.Sprintf("%s (%s)", p.Kind.ConfirmLabel(), m.keyMap.Confirm.Help().Key))
	cancel := lipgloss.NewStyle().
		Padding(0, 1).
		Render(fmt.Sprintf("Cancel (%s)", m.keyMap.Cancel.Help().Key))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		desc,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", confirm),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.styles.BorderColor)).
		Padding(1, 2).
		Render(body)
}

// renderForm renders the add todo form
func (m Model) renderForm() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Add Todo"))
	sb.WriteString("\n\n")
	sb.WriteString("Todo Name:\n")
	sb.WriteString(m.nameInput.View())
	sb.WriteString("\n")

	if m.formErr != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ErrorColor)).Render(m.formErr))
		sb.WriteString("\n")
	}
	if m.submitting {
		sb.WriteString(m.spinner.View() + " Saving...")
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderColumnChooser lists the hideable columns with their visibility
func (m Model) renderColumnChooser() string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Toggle columns"))
	sb.WriteString("\n\n")

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.SelectedBgColor))

	for i, c := range hideableColumns() {
		mark := "[ ]"
		if m.state.Visible(c) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, c.Title())
		if i == m.columnCursor {
			line = selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderToasts renders the notifications currently on screen
func (m Model) renderToasts() string {
	var out []string
	for _, t := range m.toasts.Toasts() {
		color := m.styles.SuccessColor
		if t.Variant == notify.Destructive {
			color = m.styles.ErrorColor
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Bold(true).Render(t.Title),
				t.Description,
			))
		out = append(out, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// renderHelp renders the full list of commands
func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			sb.WriteString(fmt.Sprintf("%s: %s\n",
				descStyle.Render(binding.Help().Desc),
				keyStyle.Render(strings.Join(binding.Keys(), ", "))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// helpBar renders the available actions for the current mode
func (m Model) helpBar() string {
	if m.mode == NormalMode {
		return m.help.View(m.keyMap)
	}

	var actions []string
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor)).
		Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}
	addBinding := func(b key.Binding) {
		addAction(b.Help().Key, b.Help().Desc)
	}

	switch m.mode {
	case FilterMode:
		addAction("enter", "apply")
		addAction("esc", "clear")
	case CreateMode:
		addAction("enter", "save")
		addAction("esc", "cancel")
	case ConfirmMode:
		addBinding(m.keyMap.Confirm)
		addBinding(m.keyMap.Cancel)
	case ColumnsMode:
		addAction("↑/↓", "move")
		addAction("space", "toggle")
		addBinding(m.keyMap.Cancel)
	case HelpViewMode:
		addAction(m.keyMap.ShowHelp.Help().Key+"/esc", "back")
		addBinding(m.keyMap.QuitApp)
	}

	return strings.Join(actions, separator)
}
