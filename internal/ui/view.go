package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// View renders the full screen.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// Render draws the screen as a string.
func (m *Model) Render() string {
	var lines []string
	lines = append(lines, m.toolbar())

	switch m.mode {
	case modeHelp:
		lines = append(lines, m.helpLines()...)
	case modeMenu:
		lines = append(lines, m.menuLines()...)
	default:
		lines = append(lines, m.gridView())
	}

	lines = append(lines, m.footer(), m.styles.muted.Render(grid.SummaryLine(m.state)))
	if s := m.statusLine(); s != "" {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}

// chrome is the number of lines drawn around the body rows.
func (m *Model) chrome() int {
	n := 5 // toolbar, header, rule, footer, summary
	if m.showFilters {
		n++
	}
	if m.statusLine() != "" {
		n++
	}
	return n
}

// gridView draws the page rows that fit the window, keeping the cursor row
// on screen.
func (m *Model) gridView() string {
	page := m.result.Page
	top, n := 0, len(page)
	if m.height > 0 {
		n = min(n, max(m.height-m.chrome(), 1))
		if m.cursor >= n {
			top = m.cursor - n + 1
		}
	}
	m.grid.SetRows(page[top : top+n])
	m.grid.SetCursor(m.cursor - top)
	if m.mode == modeDrag {
		m.grid.Blur()
	} else {
		m.grid.Focus()
	}
	if len(page) == 0 {
		return m.grid.View() + "\n" + m.styles.muted.Render("No matching rows")
	}
	return m.grid.View()
}

func (m *Model) toolbar() string {
	var left string
	switch m.mode {
	case modeSearch:
		left = m.styles.label.Render("Search: ") + m.search.View()
	case modeFilter:
		left = m.styles.label.Render("Filter "+columnHeader(m.state, m.filterCol)+": ") + m.filter.View()
	default:
		if q := m.state.GlobalFilter(); q != "" {
			left = m.styles.label.Render("Search: ") + q
		} else {
			left = m.styles.label.Render("Search: ") + m.styles.muted.Render("Search all columns... (/)")
		}
	}
	right := fmt.Sprintf("Showing %d of %d rows", len(m.result.Page), m.result.Filtered())
	return spread(left, right, m.width)
}

func (m *Model) footer() string {
	left := describePage(m.result, m.state.Page().Size)
	var hint string
	switch m.mode {
	case modeDrag:
		hint = fmt.Sprintf("Moving %s: h/l pick target, enter drop, esc cancel", columnHeader(m.state, m.drag.Active()))
	case modeMenu:
		hint = "j/k move  space toggle  a all  n none  r reset  esc close"
	default:
		var nav []string
		if m.result.CanPrev() {
			nav = append(nav, "p prev")
		}
		if m.result.CanNext() {
			nav = append(nav, "n next")
		}
		nav = append(nav, "? help")
		hint = strings.Join(nav, "  ")
	}
	return spread(left, m.styles.muted.Render(hint), m.width)
}

func (m *Model) statusLine() string {
	var parts []string
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, m.styles.errText.Render(m.status))
		} else {
			parts = append(parts, m.styles.accent.Render(m.status))
		}
	}
	if n := m.result.WhereErrors; n > 0 {
		parts = append(parts, m.styles.errText.Render(fmt.Sprintf("%d rows skipped: where expression failed", n)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) menuLines() []string {
	out := []string{m.styles.title.Render("Columns")}
	for i, id := range m.state.Order() {
		c, _ := m.state.Column(id)
		box := "[ ]"
		if c.Visible {
			box = "[x]"
		}
		line := box + " " + c.Header
		if c.Pin != grid.PinNone {
			line += " (" + string(c.Pin) + ")"
		}
		if i == m.menuCursor {
			line = m.styles.menuSel.Render("> " + line)
		} else {
			line = "  " + line
		}
		out = append(out, line)
	}
	return out
}

func (m *Model) helpLines() []string {
	out := []string{m.styles.title.Render("Keys")}
	for _, h := range helpOrder {
		keys := KeysFor(m.keys, h.action)
		if len(keys) == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("  %-22s %s", strings.Join(keys, "/"), h.desc))
	}
	return out
}

// spread puts left and right on one line, right-aligned when width is known.
func spread(left, right string, width int) string {
	gap := 2
	if width > 0 {
		used := lipgloss.Width(left) + lipgloss.Width(right)
		gap = max(width-used, 2)
	}
	return left + strings.Repeat(" ", gap) + right
}
