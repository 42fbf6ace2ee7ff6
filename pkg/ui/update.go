package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoboard/pkg/events"
	"todoboard/pkg/modal"
	"todoboard/pkg/mutate"
	"todoboard/pkg/notify"
	tbl "todoboard/pkg/table"
	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case listLoadedMsg:
		m.handleLoaded(mutate.Result(msg))

	case mutationDoneMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		if msg.op == events.OpCreate {
			m.submitting = false
			if msg.err == nil {
				m.resetInputs()
				m.nameInput.Blur()
				m.mode = NormalMode
			}
		}

	case eventMsg:
		e := events.Event(msg)
		hadToasts := len(m.toasts.Toasts()) > 0
		m.toasts.Push(notify.FromEvent(e, m.now(), m.config.ToastDuration))
		cmds = append(cmds, waitForEvent(m.events))
		if e.Succeeded() {
			cmds = append(cmds, m.loadCmd())
		}
		if !hadToasts {
			cmds = append(cmds, toastTick())
		}

	case busClosedMsg:
		utils.Log("event bus closed")

	case toastTickMsg:
		if m.toasts.Prune(m.now()) {
			cmds = append(cmds, toastTick())
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width - 4)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.mode {
	case NormalMode:
		switch {
		case key.Matches(msg, m.keyMap.QuitApp):
			m.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.ShowHelp):
			m.mode = HelpViewMode

		case key.Matches(msg, m.keyMap.FilterTodos):
			m.mode = FilterMode
			m.filterInput.SetValue(m.state.Filter)
			m.filterInput.CursorEnd()
			return m, m.filterInput.Focus()

		case key.Matches(msg, m.keyMap.CreateTodo):
			m.mode = CreateMode
			m.resetInputs()
			return m, textinput.Blink

		case key.Matches(msg, m.keyMap.CompleteTodo):
			if it, ok := m.selectedItem(); ok && !it.IsComplete {
				m.dialog.Open(it.ID, modal.Update)
				m.mode = ConfirmMode
			}

		case key.Matches(msg, m.keyMap.DeleteTodo):
			if it, ok := m.selectedItem(); ok {
				m.dialog.Open(it.ID, modal.Delete)
				m.mode = ConfirmMode
			}

		case key.Matches(msg, m.keyMap.SortByName):
			m.apply(tbl.ToggleSort(tbl.ColumnName))

		case key.Matches(msg, m.keyMap.NextPage):
			m.apply(tbl.NextPage(m.view.Filtered))

		case key.Matches(msg, m.keyMap.PrevPage):
			m.apply(tbl.PrevPage())

		case key.Matches(msg, m.keyMap.ToggleColumns):
			m.mode = ColumnsMode
			m.columnCursor = 0

		case key.Matches(msg, m.keyMap.Reload):
			return m, m.loadCmd()

		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case FilterMode:
		switch {
		case msg.Type == tea.KeyEsc:
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.apply(tbl.SetFilter(""))
			m.mode = NormalMode
			return m, nil

		case msg.Type == tea.KeyEnter:
			m.filterInput.Blur()
			m.mode = NormalMode
			return m, nil
		}

		m.filterInput, cmd = m.filterInput.Update(msg)
		if m.filterInput.Value() != m.state.Filter {
			m.apply(tbl.SetFilter(m.filterInput.Value()))
		}
		return m, cmd

	case CreateMode:
		switch msg.Type {
		case tea.KeyEsc:
			m.nameInput.Blur()
			m.formErr = ""
			m.mode = NormalMode
			return m, nil

		case tea.KeyEnter:
			if m.submitting {
				return m, nil
			}
			req, err := todo.NewCreateRequest(m.nameInput.Value())
			if err != nil {
				m.formErr = err.Error()
				return m, nil
			}
			m.formErr = ""
			m.submitting = true
			m.inFlight++
			return m, m.createCmd(req.Name)
		}

		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case ConfirmMode:
		switch {
		case key.Matches(msg, m.keyMap.Confirm):
			m.mode = NormalMode
			if p, ok := m.dialog.Confirm(); ok {
				utils.Log("dialog confirmed", "id", p.ID, "action", p.Kind.ConfirmLabel())
				m.inFlight++
				return m, m.dispatchCmd(p)
			}

		case key.Matches(msg, m.keyMap.Cancel), msg.String() == "n":
			m.dialog.Cancel()
			m.mode = NormalMode
		}

	case ColumnsMode:
		cols := hideableColumns()
		switch msg.String() {
		case "up", "k":
			if m.columnCursor > 0 {
				m.columnCursor--
			}
		case "down", "j":
			if m.columnCursor < len(cols)-1 {
				m.columnCursor++
			}
		case " ", "enter", "x":
			m.apply(tbl.ToggleVisible(cols[m.columnCursor]))
		default:
			if key.Matches(msg, m.keyMap.Cancel) || key.Matches(msg, m.keyMap.ToggleColumns) {
				m.mode = NormalMode
			}
		}

	case HelpViewMode:
		switch {
		case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.ShowHelp):
			m.mode = NormalMode
		case key.Matches(msg, m.keyMap.QuitApp):
			m.Close()
			return m, tea.Quit
		}
	}

	return m, nil
}
