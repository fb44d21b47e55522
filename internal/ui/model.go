// Package ui is the interactive employee directory: a bubbletea program
// over a grid.State, with search, column filters, sorting, pinning,
// resizing, keyboard column moves, visibility and pagination.
package ui

import (
	"context"
	"fmt"
	"slices"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/format"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
	"github.com/oakwood-commons/dirtab/internal/ui/table"
	"github.com/oakwood-commons/dirtab/pkg/logger"
)

type mode int

const (
	modeTable mode = iota
	modeSearch
	modeFilter
	modeDrag
	modeMenu
	modeHelp
)

func (m mode) String() string {
	return [...]string{"table", "search", "filter", "drag", "menu", "help"}[m]
}

// Options configures New.
type Options struct {
	Rows []employee.Employee
	// State is the starting table state. A zero State starts from the
	// employee schema and the configured limits.
	State   grid.State
	Config  config.Config
	Where   rowmodel.Predicate
	NoColor bool
	Width   int
	Height  int
	// Reload re-reads the data source; nil disables reloading.
	Reload func(context.Context) ([]employee.Employee, error)
	// Changes signals that the data source changed on disk.
	Changes <-chan struct{}
	// WatchErrors reports file watcher failures on the status line.
	WatchErrors <-chan error
	// Keys overrides DefaultKeyBindings.
	Keys map[string]Action
}

// Model is the bubbletea model for the directory table.
type Model struct {
	ctx  context.Context
	cfg  config.Config
	keys map[string]Action

	rows   []employee.Employee
	state  grid.State
	result rowmodel.Result[employee.Employee]
	where  rowmodel.Predicate
	format format.Formatter

	grid        *table.Model[employee.Employee]
	focus       string
	cursor      int
	drag        grid.DragSession
	mode        mode
	showFilters bool
	menuCursor  int

	search    textinput.Model
	filter    textinput.Model
	filterCol string

	width   int
	height  int
	noColor bool
	theme   Theme
	styles  viewStyles

	status    string
	statusErr bool

	reload    func(context.Context) ([]employee.Employee, error)
	changes   <-chan struct{}
	watchErrs <-chan error
}

// New builds the model and computes the first page.
func New(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if len(cfg.Pagination.PageSizes) == 0 {
		if def, err := config.Default(); err == nil {
			cfg = def
		}
	}
	st := opts.State
	if len(st.Columns()) == 0 {
		st = grid.New(employee.Columns(), cfg.GridOptions())
	}
	keys := opts.Keys
	if keys == nil {
		keys = DefaultKeyBindings
	}

	m := &Model{
		ctx:       ctx,
		cfg:       cfg,
		keys:      keys,
		rows:      opts.Rows,
		state:     st,
		where:     opts.Where,
		format:    cfg.Formatter(),
		width:     opts.Width,
		height:    opts.Height,
		noColor:   opts.NoColor,
		theme:     ThemeFromConfig(cfg.Theme),
		reload:    opts.Reload,
		changes:   opts.Changes,
		watchErrs: opts.WatchErrors,
	}
	m.grid = table.NewModel(func(e employee.Employee, c grid.Column) string {
		return m.format.Cell(c.ColumnDef, e.Field(c.ID))
	})
	m.grid.SetScale(cfg.Table.CellScale)
	m.grid.SetNoColor(m.noColor)
	m.grid.SetColors(m.theme.HeaderFG, m.theme.HeaderBG, m.theme.SelectedFG, m.theme.SelectedBG, m.theme.PinnedBG)
	m.grid.SetSize(m.width)
	m.styles = newViewStyles(m.theme, m.noColor)

	m.search = newInput("Search all columns...")
	m.filter = newInput("")

	if vis := st.VisibleColumns(); len(vis) > 0 {
		m.focus = vis[0].ID
	}
	m.refresh()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.SetWidth(40)
	ti.Prompt = ""
	return ti
}

func (m *Model) log() logr.Logger {
	return *logger.FromContext(m.ctx)
}

// State returns the current table state.
func (m *Model) State() grid.State { return m.state }

// Result returns the current row model.
func (m *Model) Result() rowmodel.Result[employee.Employee] { return m.result }

// Focus is the id of the focused column.
func (m *Model) Focus() string { return m.focus }

// Cursor is the highlighted row within the page.
func (m *Model) Cursor() int { return m.cursor }

// Status is the message on the status line.
func (m *Model) Status() string { return m.status }

// SetRows replaces the data and recomputes the view.
func (m *Model) SetRows(rows []employee.Employee) {
	m.rows = rows
	m.refresh()
}

// SetSize sets the window size in cells.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.grid.SetSize(width)
	if width > 0 {
		m.search.SetWidth(max(10, width/3))
		m.filter.SetWidth(max(10, width/3))
	}
}

// Init starts listening for data file changes and watcher errors.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), waitForWatchErr(m.watchErrs))
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case fileChangedMsg:
		m.log().V(1).Info("data file changed")
		return m, tea.Batch(m.reloadCmd(), waitForChange(m.changes))
	case reloadedMsg:
		m.applyReload(msg)
		return m, nil
	case watchErrMsg:
		m.setError("watch: " + msg.err.Error())
		return m, waitForWatchErr(m.watchErrs)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeFilter:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg, key)
	case modeFilter:
		return m.handleFilterKey(msg, key)
	case modeDrag:
		m.handleDragKey(key)
		return nil
	case modeMenu:
		m.handleMenuKey(key)
		return nil
	case modeHelp:
		if key == "?" || key == "esc" || key == "q" {
			m.mode = modeTable
		}
		return nil
	}
	return m.apply(m.keys[key])
}

// apply runs a table-mode action.
func (m *Model) apply(a Action) tea.Cmd {
	if a == ActionNone {
		return nil
	}
	m.status, m.statusErr = "", false
	before := m.state
	var cmd tea.Cmd

	switch a {
	case ActionDown:
		m.moveCursor(1)
	case ActionUp:
		m.moveCursor(-1)
	case ActionTop:
		m.cursor = 0
	case ActionBottom:
		m.cursor = max(len(m.result.Page)-1, 0)
	case ActionPrevColumn:
		m.moveFocus(-1)
	case ActionNextColumn:
		m.moveFocus(1)
	case ActionScrollLeft:
		m.grid.ScrollBy(-m.cfg.Table.ScrollStep)
	case ActionScrollRight:
		m.grid.ScrollBy(m.cfg.Table.ScrollStep)
	case ActionSort:
		m.state = m.state.ToggleSort(m.focus, false)
	case ActionMultiSort:
		m.state = m.state.ToggleSort(m.focus, true)
	case ActionSearch:
		m.mode = modeSearch
		m.search.SetValue(m.state.GlobalFilter())
		m.search.CursorEnd()
		cmd = m.search.Focus()
	case ActionFilter:
		cmd = m.startFilter()
	case ActionFilterRow:
		m.showFilters = !m.showFilters
	case ActionClear:
		m.state = m.state.ClearFilters()
	case ActionPinLeft:
		m.state = m.state.Pin(m.focus, grid.PinLeft)
	case ActionPinRight:
		m.state = m.state.Pin(m.focus, grid.PinRight)
	case ActionUnpin:
		m.state = m.state.Pin(m.focus, grid.PinNone)
	case ActionNarrow:
		m.state = m.state.ResizeBy(m.focus, -m.cfg.Table.ResizeStep)
	case ActionWiden:
		m.state = m.state.ResizeBy(m.focus, m.cfg.Table.ResizeStep)
	case ActionNarrowMore:
		m.state = m.state.ResizeBy(m.focus, -m.cfg.Table.ResizeShiftStep)
	case ActionWidenMore:
		m.state = m.state.ResizeBy(m.focus, m.cfg.Table.ResizeShiftStep)
	case ActionDrag:
		if m.focus != "" {
			m.drag = grid.StartDrag(m.focus)
			m.mode = modeDrag
		}
	case ActionToggleCol:
		m.state = m.state.ToggleVisible(m.focus)
	case ActionShowAll:
		m.state = m.state.ShowAll()
	case ActionHideAll:
		m.state = m.state.HideAll()
	case ActionResetCols:
		m.state = m.state.ResetVisibility()
	case ActionColumnMenu:
		m.mode = modeMenu
		m.menuCursor = max(slices.Index(m.state.Order(), m.focus), 0)
	case ActionNextPage:
		m.state = m.state.NextPage(m.result.PageCount)
	case ActionPrevPage:
		m.state = m.state.PrevPage()
	case ActionPageSizeUp:
		m.state = m.state.CyclePageSize(1)
	case ActionPageSizeDn:
		m.state = m.state.CyclePageSize(-1)
	case ActionReload:
		if m.reload == nil {
			m.setError("this data source cannot be reloaded")
		} else {
			m.status = "Reloading..."
			cmd = m.reloadCmd()
		}
	case ActionHelp:
		m.mode = modeHelp
	case ActionQuit:
		return tea.Quit
	}

	if m.state.Page() != before.Page() {
		m.cursor = 0
	}
	m.log().V(1).Info("action", "action", string(a), logger.KeyColumn, m.focus, "mode", m.mode.String())
	m.refresh()
	return cmd
}

func (m *Model) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.result.Page)-1, 0))
}

func (m *Model) visibleIDs() []string {
	cols := m.state.VisibleColumns()
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}

func (m *Model) moveFocus(delta int) {
	ids := m.visibleIDs()
	if len(ids) == 0 {
		m.focus = ""
		return
	}
	i := slices.Index(ids, m.focus)
	i = min(max(i+delta, 0), len(ids)-1)
	m.focus = ids[i]
	m.grid.SetColumns(m.state.VisibleColumns())
	m.grid.ScrollTo(m.focus)
}

// fixFocus keeps the focus on a visible column, preferring the one that took
// the old column's place.
func (m *Model) fixFocus(prev []string) {
	ids := m.visibleIDs()
	if len(ids) == 0 {
		m.focus = ""
		return
	}
	if slices.Contains(ids, m.focus) {
		return
	}
	i := slices.Index(prev, m.focus)
	m.focus = ids[min(max(i, 0), len(ids)-1)]
}

// refresh recomputes the row model and pushes everything into the grid.
func (m *Model) refresh() {
	prev := m.grid.Columns()
	prevIDs := make([]string, len(prev))
	for i, c := range prev {
		prevIDs[i] = c.ID
	}

	m.result = rowmodel.Compute(m.rows, m.state, rowmodel.Options{Where: m.where, Search: m.cfg.SearchMode()})
	if m.result.PageIndex != m.state.Page().Index {
		m.state = m.state.SetPageIndex(m.result.PageIndex)
	}
	m.moveCursor(0)
	m.fixFocus(prevIDs)

	m.grid.SetColumns(m.state.VisibleColumns())
	m.grid.SetSorting(m.state.Sorting())
	m.grid.SetFilters(m.filterValues())
	m.grid.ShowFilters(m.showFilters)
	m.grid.SetFocusColumn(m.focus)
	if m.drag.Dragging() {
		m.grid.SetDrag(m.drag.Active(), m.drag.Over())
	} else {
		m.grid.SetDrag("", "")
	}
}

func (m *Model) filterValues() map[string]string {
	out := map[string]string{}
	for _, f := range m.state.ColumnFilters() {
		if c, ok := m.state.Column(f.ID); ok && c.Filter == grid.FilterEquals {
			out[f.ID] = grid.YesNo(f.Bool())
			continue
		}
		out[f.ID] = f.Value
	}
	return out
}

func (m *Model) setError(msg string) {
	m.status, m.statusErr = msg, true
}

var _ tea.Model = (*Model)(nil)

func columnHeader(s grid.State, id string) string {
	if c, ok := s.Column(id); ok {
		return c.Header
	}
	return id
}

func describePage(r rowmodel.Result[employee.Employee], size int) string {
	return fmt.Sprintf("Page %d of %d", r.PageIndex+1, max(r.PageCount, 1)) + fmt.Sprintf("  Show %d", size)
}
