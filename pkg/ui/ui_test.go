package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoboard/pkg/api"
	"todoboard/pkg/config"
	"todoboard/pkg/events"
	"todoboard/pkg/modal"
	"todoboard/pkg/notify"
	tbl "todoboard/pkg/table"
	"todoboard/pkg/todo"
)

type fakeRemote struct {
	mu        sync.Mutex
	items     []todo.Item
	listErr   error
	failWith  error
	created   []string
	completed []string
	deleted   []string
}

func (f *fakeRemote) List(ctx context.Context, opts api.ListOptions) ([]todo.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]todo.Item(nil), f.items...), nil
}

func (f *fakeRemote) Create(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	return f.failWith
}

func (f *fakeRemote) Complete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, id)
	if f.failWith != nil {
		return f.failWith
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsComplete = true
		}
	}
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.failWith != nil {
		return f.failWith
	}
	kept := f.items[:0:0]
	for _, it := range f.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeRemote) setItems(items []todo.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func makeItems(names ...string) []todo.Item {
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	items := make([]todo.Item, len(names))
	for i, n := range names {
		items[i] = todo.Item{
			ID:        fmt.Sprintf("id-%d", i),
			Name:      n,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return items
}

func newTestModel(t *testing.T, remote *fakeRemote) Model {
	t.Helper()
	m := NewModel(remote, config.Config{}, config.DefaultStyles())
	t.Cleanup(m.Close)
	return m
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(m.loadCmd()())
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func nextEvent(t *testing.T, m Model) eventMsg {
	t.Helper()
	select {
	case e := <-m.events:
		return eventMsg(e)
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return eventMsg{}
	}
}

// reloaded runs the commands returned for a bus event and hands back the
// list load among them
func reloaded(t *testing.T, cmd tea.Cmd) listLoadedMsg {
	t.Helper()
	msgs := make(chan tea.Msg, 16)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, inner := range batch {
					run(inner)
				}
				return
			}
			msgs <- msg
		}()
	}
	run(cmd)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-msgs:
			if loaded, ok := msg.(listLoadedMsg); ok {
				return loaded
			}
		case <-timeout:
			t.Fatal("no reload was issued")
			return listLoadedMsg{}
		}
	}
}

func TestLoadShowsFirstPage(t *testing.T) {
	remote := &fakeRemote{items: makeItems("a1", "a2", "a3", "a4", "a5", "a6", "a7")}
	m := load(t, newTestModel(t, remote))

	assert.Len(t, m.view.Rows, 5)
	assert.Len(t, m.table.Rows(), 5)
	assert.Equal(t, "1 of 2 page(s) showing.", m.view.Summary())
	assert.Contains(t, m.View(), "1 of 2 page(s) showing.")
	assert.Contains(t, m.View(), "05 March 2024")
	assert.False(t, m.Busy())
}

func TestPagingKeys(t *testing.T) {
	remote := &fakeRemote{items: makeItems("a1", "a2", "a3", "a4", "a5", "a6", "a7")}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "n")
	assert.Equal(t, 1, m.state.PageIndex)
	assert.Len(t, m.view.Rows, 2)

	m, _ = press(m, "n")
	assert.Equal(t, 1, m.state.PageIndex)

	m, _ = press(m, "p")
	assert.Equal(t, 0, m.state.PageIndex)
}

func TestFilterModeFiltersAsYouType(t *testing.T) {
	remote := &fakeRemote{items: makeItems("Buy milk", "Walk dog", "buy bread", "Read", "Cook", "Clean", "Sleep")}
	m := load(t, newTestModel(t, remote))
	m, _ = press(m, "n")
	require.Equal(t, 1, m.state.PageIndex)

	m, _ = press(m, "/", "b", "u", "y")
	assert.Equal(t, FilterMode, m.mode)
	assert.Equal(t, "buy", m.state.Filter)
	assert.Equal(t, 0, m.state.PageIndex)
	assert.Equal(t, 2, m.view.Filtered)

	m, _ = press(m, "enter")
	assert.Equal(t, NormalMode, m.mode)
	assert.Equal(t, "buy", m.state.Filter)

	m, _ = press(m, "/", "esc")
	assert.Equal(t, "", m.state.Filter)
	assert.Equal(t, 7, m.view.Filtered)
}

func TestSortKeyCycles(t *testing.T) {
	remote := &fakeRemote{items: makeItems("banana", "Apple", "cherry")}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "s")
	assert.Equal(t, tbl.Ascending, m.state.SortOf(tbl.ColumnName))
	assert.Equal(t, "Apple", m.view.Rows[0].Name)

	m, _ = press(m, "s")
	assert.Equal(t, tbl.Descending, m.state.SortOf(tbl.ColumnName))
	assert.Equal(t, "cherry", m.view.Rows[0].Name)

	m, _ = press(m, "s")
	assert.Equal(t, tbl.Unsorted, m.state.SortOf(tbl.ColumnName))
	assert.Equal(t, "banana", m.view.Rows[0].Name)
}

func TestCreateValidationSendsNothing(t *testing.T) {
	remote := &fakeRemote{}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "a", "x")
	m, cmd := press(m, "enter")

	assert.Nil(t, cmd)
	assert.Equal(t, CreateMode, m.mode)
	assert.Equal(t, "Todo Name must be at least 2 characters.", m.formErr)
	assert.Contains(t, m.View(), "Todo Name must be at least 2 characters.")
	assert.Empty(t, remote.created)
}

func TestCreateSubmitsAndReloads(t *testing.T) {
	remote := &fakeRemote{}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "a", "Read book")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	m = update(m, cmd())
	assert.Equal(t, []string{"Read book"}, remote.created)
	assert.Equal(t, NormalMode, m.mode)
	assert.Equal(t, "", m.nameInput.Value())

	m = update(m, nextEvent(t, m))
	toasts := m.toasts.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Success Create Todo", toasts[0].Title)
	assert.True(t, m.loader.Loading(), "a successful mutation reloads the list")
}

func TestDeleteConfirmFlow(t *testing.T) {
	remote := &fakeRemote{items: makeItems("first", "second")}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "d")
	require.Equal(t, ConfirmMode, m.mode)
	assert.Equal(t, modal.PendingAction{ID: "id-0", Kind: modal.Delete}, m.dialog.Pending())
	assert.Contains(t, m.View(), "Are you sure to delete todo item?")

	m, cmd := press(m, "y")
	require.NotNil(t, cmd)
	assert.Equal(t, NormalMode, m.mode)
	assert.False(t, m.dialog.Confirming())

	m = update(m, cmd())
	assert.Equal(t, []string{"id-0"}, remote.deleted)
	assert.Equal(t, 0, m.inFlight)

	next, cmd := m.Update(nextEvent(t, m))
	m = next.(Model)
	assert.Equal(t, "Success Delete Todo", m.toasts.Toasts()[0].Title)
	require.Len(t, m.items, 2, "the list only changes after the re-fetch")

	m = update(m, reloaded(t, cmd))
	require.Len(t, m.items, 1)
	assert.Equal(t, "id-1", m.items[0].ID)
	assert.Equal(t, "second", m.items[0].Name)
}

func TestCompleteFlow(t *testing.T) {
	remote := &fakeRemote{items: makeItems("first")}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "u")
	require.Equal(t, ConfirmMode, m.mode)
	assert.Contains(t, m.View(), "Update Todo Status")

	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	m = update(m, cmd())
	assert.Equal(t, []string{"id-0"}, remote.completed)

	next, cmd := m.Update(nextEvent(t, m))
	m = update(next.(Model), reloaded(t, cmd))
	require.Len(t, m.items, 1)
	assert.True(t, m.items[0].IsComplete)
	assert.Equal(t, []modal.Kind{modal.Delete}, modal.ActionsFor(m.items[0]))

	m, _ = press(m, "u")
	assert.Equal(t, NormalMode, m.mode)
}

func TestRowActionsAvailableRightAfterLoad(t *testing.T) {
	remote := &fakeRemote{items: makeItems("first", "second")}
	m := newTestModel(t, remote)
	_, ok := m.selectedItem()
	assert.False(t, ok)

	m = load(t, m)
	assert.Equal(t, 0, m.table.Cursor())

	m, _ = press(m, "d")
	require.Equal(t, ConfirmMode, m.mode)
	assert.Equal(t, "id-0", m.dialog.Pending().ID)
	m, _ = press(m, "esc")

	m, _ = press(m, "/", "z", "z", "z", "enter")
	require.Equal(t, 0, m.view.Filtered)
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, "d")
	assert.Equal(t, NormalMode, m.mode)
	assert.False(t, m.dialog.Confirming())

	m, _ = press(m, "/", "esc")

	require.Equal(t, NormalMode, m.mode)
	assert.Equal(t, 0, m.table.Cursor())
	m, _ = press(m, "u")
	require.Equal(t, ConfirmMode, m.mode)
	assert.Equal(t, modal.PendingAction{ID: "id-0", Kind: modal.Update}, m.dialog.Pending())
}

func TestCancelDialog(t *testing.T) {
	remote := &fakeRemote{items: makeItems("first")}
	m := load(t, newTestModel(t, remote))

	m, _ = press(m, "d", "esc")
	assert.Equal(t, NormalMode, m.mode)
	assert.False(t, m.dialog.Confirming())
	assert.Empty(t, remote.deleted)
}

func TestCompleteNotOfferedForFinishedItem(t *testing.T) {
	items := makeItems("done already")
	items[0].IsComplete = true
	m := load(t, newTestModel(t, &fakeRemote{items: items}))

	m, _ = press(m, "u")
	assert.Equal(t, NormalMode, m.mode)
	assert.False(t, m.dialog.Confirming())
}

func TestFailedMutationShowsFailureToastWithoutReload(t *testing.T) {
	remote := &fakeRemote{items: makeItems("first"), failWith: errors.New("boom")}
	m := load(t, newTestModel(t, remote))

	m, cmd := press(m, "d", "y")
	require.NotNil(t, cmd)
	m = update(m, cmd())
	m = update(m, nextEvent(t, m))

	toasts := m.toasts.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.Destructive, toasts[0].Variant)
	assert.Equal(t, "Uh oh! Something went wrong.", toasts[0].Title)
	assert.False(t, m.loader.Loading())
	assert.Len(t, m.items, 1)
}

func TestStaleLoadIsIgnored(t *testing.T) {
	remote := &fakeRemote{items: makeItems("old")}
	m := newTestModel(t, remote)

	first := m.loadCmd()
	second := m.loadCmd()

	staleMsg := first()
	remote.setItems(makeItems("new"))
	freshMsg := second()

	m = update(m, freshMsg)
	m = update(m, staleMsg)
	require.Len(t, m.items, 1)
	assert.Equal(t, "new", m.items[0].Name)
}

func TestLoadErrorIsShownUntilReload(t *testing.T) {
	remote := &fakeRemote{listErr: errors.New("connection refused")}
	m := load(t, newTestModel(t, remote))

	assert.Error(t, m.loadErr)
	assert.Contains(t, m.View(), "connection refused")

	remote.mu.Lock()
	remote.listErr = nil
	remote.mu.Unlock()

	m, cmd := press(m, "r")
	require.NotNil(t, cmd)
	m = update(m, cmd())
	assert.NoError(t, m.loadErr)
}

func TestColumnChooserHidesColumns(t *testing.T) {
	m := load(t, newTestModel(t, &fakeRemote{items: makeItems("first")}))

	m, _ = press(m, "c")
	require.Equal(t, ColumnsMode, m.mode)

	m, _ = press(m, " ")
	assert.False(t, m.state.Visible(tbl.ColumnName))
	assert.Len(t, m.view.Columns, 4)
	assert.Len(t, m.table.Rows()[0], 4)

	m, _ = press(m, "esc")
	assert.Equal(t, NormalMode, m.mode)
}

func TestToastsExpire(t *testing.T) {
	m := newTestModel(t, &fakeRemote{})
	m = update(m, eventMsg(events.Event{Op: events.OpCreate}))
	require.Len(t, m.toasts.Toasts(), 1)

	later := time.Now().Add(time.Minute)
	m.now = func() time.Time { return later }
	m = update(m, toastTickMsg(later))
	assert.Empty(t, m.toasts.Toasts())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &fakeRemote{})
	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestLongNamesAreTruncated(t *testing.T) {
	long := "an unusually long todo name that will not fit the column"
	m := load(t, newTestModel(t, &fakeRemote{items: makeItems(long)}))

	cell := m.table.Rows()[0][0]
	assert.NotEqual(t, long, cell)
	assert.True(t, len([]rune(cell)) <= columnWidth(tbl.ColumnName))
	assert.Equal(t, "…", string([]rune(cell)[len([]rune(cell))-1]))
	assert.Equal(t, long, m.view.Rows[0].Name)
}
