package ui

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// handleSearchKey edits the global search. The filter follows every
// keystroke; enter keeps it and esc clears it.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg, key string) tea.Cmd {
	switch key {
	case "enter":
		m.search.Blur()
		m.mode = modeTable
		return nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.mode = modeTable
		m.state = m.state.SetGlobalFilter("")
		m.cursor = 0
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.state.GlobalFilter() {
		m.state = m.state.SetGlobalFilter(q)
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

// startFilter opens the filter for the focused column. Boolean columns
// cycle All, Yes, No instead of taking text.
func (m *Model) startFilter() tea.Cmd {
	c, ok := m.state.Column(m.focus)
	if !ok {
		return nil
	}
	if !c.Filterable() {
		m.setError(c.Header + " cannot be filtered")
		return nil
	}
	if c.Filter == grid.FilterEquals {
		m.state = m.state.SetColumnFilter(c.ID, nextBoolFilter(m.state, c.ID))
		m.cursor = 0
		return nil
	}
	m.mode = modeFilter
	m.filterCol = c.ID
	cur, _ := m.state.ColumnFilter(c.ID)
	m.filter.SetValue(cur.Value)
	m.filter.CursorEnd()
	m.filter.Placeholder = "Filter " + c.Header + "..."
	return m.filter.Focus()
}

// nextBoolFilter steps All -> Yes -> No -> All.
func nextBoolFilter(s grid.State, id string) string {
	f, ok := s.ColumnFilter(id)
	switch {
	case !ok:
		return "Yes"
	case f.Bool():
		return "No"
	default:
		return "All"
	}
}

func (m *Model) handleFilterKey(msg tea.KeyPressMsg, key string) tea.Cmd {
	switch key {
	case "enter":
		m.filter.Blur()
		m.mode = modeTable
		return nil
	case "esc":
		m.filter.Blur()
		m.filter.SetValue("")
		m.mode = modeTable
		m.state = m.state.SetColumnFilter(m.filterCol, "")
		m.cursor = 0
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	cur, _ := m.state.ColumnFilter(m.filterCol)
	if v := m.filter.Value(); v != cur.Value {
		m.state = m.state.SetColumnFilter(m.filterCol, v)
		m.cursor = 0
		m.refresh()
	}
	return cmd
}

// handleDragKey moves the drop target between visible columns. Nothing
// changes until the drop.
func (m *Model) handleDragKey(key string) {
	ids := m.visibleIDs()
	i := slices.Index(ids, m.drag.Over())
	switch m.keys[key] {
	case ActionPrevColumn:
		if i > 0 {
			m.drag = m.drag.DragOver(ids[i-1])
		}
	case ActionNextColumn:
		if i >= 0 && i+1 < len(ids) {
			m.drag = m.drag.DragOver(ids[i+1])
		}
	}
	switch key {
	case "enter", "space", "m":
		active := m.drag.Active()
		m.state, m.drag = m.drag.Drop(m.state)
		m.focus = active
		m.mode = modeTable
		m.log().V(1).Info("column dropped", "column", active, "order", m.state.Order())
	case "esc":
		m.drag = m.drag.Cancel()
		m.mode = modeTable
	}
	m.refresh()
	m.grid.ScrollTo(m.drag.Over())
}

// handleMenuKey drives the column menu. It lists every column, hidden ones
// included, in their current order.
func (m *Model) handleMenuKey(key string) {
	order := m.state.Order()
	switch key {
	case "j", "down":
		m.menuCursor = min(m.menuCursor+1, len(order)-1)
	case "k", "up":
		m.menuCursor = max(m.menuCursor-1, 0)
	case "space", "enter", "x":
		if m.menuCursor < len(order) {
			m.state = m.state.ToggleVisible(order[m.menuCursor])
		}
	case "a":
		m.state = m.state.ShowAll()
	case "n":
		m.state = m.state.HideAll()
	case "r":
		m.state = m.state.ResetVisibility()
	case "esc", "c", "q":
		m.mode = modeTable
	}
	m.refresh()
}
