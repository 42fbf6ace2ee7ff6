package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoboard/pkg/config"
	"todoboard/pkg/events"
	"todoboard/pkg/keymaps"
	"todoboard/pkg/modal"
	"todoboard/pkg/mutate"
	"todoboard/pkg/notify"
	tbl "todoboard/pkg/table"
	"todoboard/pkg/todo"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	FilterMode           // typing into the name filter
	CreateMode           // the add todo form
	ConfirmMode          // update or delete dialog
	ColumnsMode          // choosing visible columns
	HelpViewMode         // Mode for displaying help
)

const defaultToastDuration = 4 * time.Second

// Model represents the application state
type Model struct {
	table         table.Model
	items         []todo.Item
	view          tbl.View
	state         tbl.State
	width, height int
	loadErr       error

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap
	help   help.Model

	// Remote state
	ctx         context.Context
	cancel      context.CancelFunc
	service     *mutate.Service
	loader      *mutate.Loader
	bus         *events.Bus
	events      <-chan events.Event
	unsubscribe func()
	inFlight    int

	// Form state
	mode        InputMode
	nameInput   textinput.Model
	filterInput textinput.Model
	formErr     string
	submitting  bool

	dialog       *modal.Controller
	columnCursor int
	toasts       *notify.Stack
	spinner      spinner.Model
	now          func() time.Time
}

// NewModel creates a new UI model reading from and mutating remote
func NewModel(remote mutate.Remote, cfg config.Config, styles config.Styles) Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(tbl.DefaultPageSize+3),
	)

	// Set table styles using the loaded styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	nameInput := textinput.New()
	nameInput.Placeholder = "Todo name"
	nameInput.CharLimit = todo.MaxNameLength * 2
	nameInput.Width = 40

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter todo name..."
	filterInput.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.AccentColor))

	bus := events.NewBus()
	ch, unsubscribe := bus.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())

	ttl := cfg.ToastDuration
	if ttl <= 0 {
		ttl = defaultToastDuration
	}
	cfg.ToastDuration = ttl

	m := Model{
		table:       t,
		state:       tbl.NewState(),
		config:      cfg,
		styles:      styles,
		keyMap:      keymaps.BuildKeyMap(cfg.KeyMap),
		help:        help.New(),
		ctx:         ctx,
		cancel:      cancel,
		service:     mutate.NewService(remote, bus),
		loader:      mutate.NewLoader(remote),
		bus:         bus,
		events:      ch,
		unsubscribe: unsubscribe,
		mode:        NormalMode,
		nameInput:   nameInput,
		filterInput: filterInput,
		dialog:      &modal.Controller{},
		toasts:      notify.NewStack(3),
		spinner:     sp,
		now:         time.Now,
	}
	m.refresh()
	return m
}

// Init starts the first load, the event subscription and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), waitForEvent(m.events), m.spinner.Tick)
}

// Close cancels outstanding loads and detaches from the event bus
func (m Model) Close() {
	m.loader.Stop()
	m.cancel()
	m.unsubscribe()
	m.bus.Close()
}

// Busy reports whether a list load or a mutation is pending
func (m Model) Busy() bool {
	return m.loader.Loading() || m.inFlight > 0
}

// resetInputs clears the create form
func (m *Model) resetInputs() {
	m.nameInput.Reset()
	m.nameInput.Focus()
	m.formErr = ""
}
