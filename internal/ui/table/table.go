// Package table draws the directory grid: a header row, an optional filter
// row and the body, with pinned columns held against the left and right
// edges while the columns between them scroll horizontally.
package table

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// DefaultScale is the number of width units per terminal cell.
const DefaultScale = 10

const ellipsis = "…"

// Model is a grid over rows of type V. It keeps no copy of the table state;
// columns and rows are handed in before each render.
type Model[V any] struct {
	cell func(V, grid.Column) string

	cols    []grid.Column
	rows    []V
	sorting []grid.SortKey
	filters map[string]string

	cursor  int
	focus   string
	scrollX int

	dragActive string
	dragOver   string

	width       int
	scale       int
	focused     bool
	noColor     bool
	showFilters bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
	pinnedBG   color.Color

	styles styles
}

type styles struct {
	header   lipgloss.Style
	focusHdr lipgloss.Style
	filter   lipgloss.Style
	rule     lipgloss.Style
	cell     lipgloss.Style
	pinned   lipgloss.Style
	selected lipgloss.Style
	dropZone lipgloss.Style
}

// NewModel returns a grid that renders each cell with cell.
func NewModel[V any](cell func(V, grid.Column) string) *Model[V] {
	m := &Model[V]{
		cell:    cell,
		scale:   DefaultScale,
		cursor:  -1,
		focused: true,
	}
	m.applyColorScheme()
	return m
}

// SetColumns sets the visible columns in display order.
func (m *Model[V]) SetColumns(cols []grid.Column) {
	m.cols = cols
	m.clampScroll()
}

// Columns returns the columns being drawn.
func (m *Model[V]) Columns() []grid.Column { return m.cols }

// SetRows sets the body rows.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
}

// Rows returns the body rows.
func (m *Model[V]) Rows() []V { return m.rows }

// SetSorting sets the sort keys shown as header arrows.
func (m *Model[V]) SetSorting(keys []grid.SortKey) { m.sorting = keys }

// SetFilters sets the values shown in the filter row.
func (m *Model[V]) SetFilters(values map[string]string) { m.filters = values }

// ShowFilters toggles the filter row under the header.
func (m *Model[V]) ShowFilters(on bool) { m.showFilters = on }

// Cursor is the highlighted body row, or -1.
func (m *Model[V]) Cursor() int { return m.cursor }

// SetCursor moves the highlight, clamped to the rows.
func (m *Model[V]) SetCursor(pos int) {
	switch {
	case len(m.rows) == 0:
		m.cursor = -1
	case pos < 0:
		m.cursor = 0
	case pos >= len(m.rows):
		m.cursor = len(m.rows) - 1
	default:
		m.cursor = pos
	}
}

// SelectedRow returns the row under the cursor.
func (m *Model[V]) SelectedRow() *V {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// SetFocusColumn marks the column whose header is highlighted.
func (m *Model[V]) SetFocusColumn(id string) { m.focus = id }

// SetDrag marks the dragged column and the current drop target.
func (m *Model[V]) SetDrag(active, over string) {
	m.dragActive, m.dragOver = active, over
}

// SetSize sets the render width in cells. Zero means as wide as needed.
func (m *Model[V]) SetSize(width int) {
	m.width = width
	m.clampScroll()
}

// Width is the configured render width.
func (m *Model[V]) Width() int { return m.width }

// SetScale sets the width units per cell.
func (m *Model[V]) SetScale(scale int) {
	if scale <= 0 {
		scale = DefaultScale
	}
	m.scale = scale
	m.clampScroll()
}

// ScrollX is the horizontal scroll of the unpinned columns, in cells.
func (m *Model[V]) ScrollX() int { return m.scrollX }

// ScrollBy scrolls the unpinned columns by delta cells.
func (m *Model[V]) ScrollBy(delta int) {
	m.scrollX += delta
	m.clampScroll()
}

// ScrollTo scrolls so the unpinned column id is fully in view.
func (m *Model[V]) ScrollTo(id string) {
	lay := m.layout()
	for _, c := range lay.center {
		if c.id != id {
			continue
		}
		if c.start < m.scrollX {
			m.scrollX = c.start
		} else if end := c.start + c.width; end > m.scrollX+lay.viewport {
			m.scrollX = end - lay.viewport
		}
		m.clampScroll()
		return
	}
}

func (m *Model[V]) Focus()        { m.focused = true }
func (m *Model[V]) Blur()         { m.focused = false }
func (m *Model[V]) Focused() bool { return m.focused }

// SetNoColor drops all styling.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors overrides the theme. Nil colors keep the defaults.
func (m *Model[V]) SetColors(headerFG, headerBG, selectedFG, selectedBG, pinnedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.pinnedBG = pinnedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	if m.noColor {
		plain := lipgloss.NewStyle()
		m.styles = styles{
			header: plain, focusHdr: plain, filter: plain, rule: plain,
			cell: plain, pinned: plain, selected: plain, dropZone: plain,
		}
		return
	}
	pick := func(c color.Color, def string) color.Color {
		if c != nil {
			return c
		}
		return lipgloss.Color(def)
	}
	hfg := pick(m.headerFG, "12")
	hbg := pick(m.headerBG, "236")
	sfg := pick(m.selectedFG, "230")
	sbg := pick(m.selectedBG, "62")
	pbg := pick(m.pinnedBG, "235")

	m.styles = styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(hfg).Background(hbg),
		focusHdr: lipgloss.NewStyle().Bold(true).Reverse(true),
		filter:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		cell:     lipgloss.NewStyle(),
		pinned:   lipgloss.NewStyle().Background(pbg),
		selected: lipgloss.NewStyle().Foreground(sfg).Background(sbg),
		dropZone: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("214")),
	}
}

// placed is a column resolved to terminal cells.
type placed struct {
	id    string
	col   grid.Column
	start int
	width int
}

type layout struct {
	left, center, right []placed
	leftWidth           int
	rightWidth          int
	centerWidth         int
	viewport            int
	total               int
}

// cells converts width units to terminal cells.
func (m *Model[V]) cells(units int) int { return units / m.scale }

// layout resolves every column to a cell span. Pinned columns are placed
// from grid.PinnedOffsets, so the header and body rows share one placement.
func (m *Model[V]) layout() layout {
	var lay layout
	offsets := grid.PinnedOffsets(m.cols)
	lay.leftWidth = m.cells(grid.PinnedWidth(m.cols, grid.PinLeft))
	lay.rightWidth = m.cells(grid.PinnedWidth(m.cols, grid.PinRight))

	units := 0
	for _, c := range m.cols {
		switch c.Pin {
		case grid.PinLeft:
			off := offsets[c.ID]
			start := m.cells(off)
			lay.left = append(lay.left, placed{c.ID, c, start, m.cells(off+c.Size) - start})
		case grid.PinRight:
			// distance from the right edge to the column's right side
			off := offsets[c.ID]
			end := lay.rightWidth - m.cells(off)
			start := lay.rightWidth - m.cells(off+c.Size)
			lay.right = append(lay.right, placed{c.ID, c, start, end - start})
		default:
			start := m.cells(units)
			units += c.Size
			lay.center = append(lay.center, placed{c.ID, c, start, m.cells(units) - start})
		}
	}
	lay.centerWidth = m.cells(units)
	natural := lay.leftWidth + lay.centerWidth + lay.rightWidth
	lay.total = natural
	if m.width > 0 {
		lay.total = m.width
	}
	lay.viewport = max(0, lay.total-lay.leftWidth-lay.rightWidth)
	return lay
}

func (m *Model[V]) clampScroll() {
	if m.scale <= 0 {
		return
	}
	lay := m.layout()
	maxScroll := max(0, lay.centerWidth-lay.viewport)
	m.scrollX = min(max(m.scrollX, 0), maxScroll)
}

// HeaderLabel is the header text of c with its sort marker.
func HeaderLabel(c grid.Column, sorting []grid.SortKey) string {
	for i, k := range sorting {
		if k.ID != c.ID {
			continue
		}
		arrow := "↑"
		if k.Desc {
			arrow = "↓"
		}
		if len(sorting) > 1 {
			return c.Header + " " + arrow + strconv.Itoa(i+1)
		}
		return c.Header + " " + arrow
	}
	return c.Header
}

// View renders the grid.
func (m *Model[V]) View() string {
	lay := m.layout()
	var lines []string

	lines = append(lines, m.renderLine(lay, func(p placed) (string, lipgloss.Style) {
		label := HeaderLabel(p.col, m.sorting)
		st := m.styles.header
		switch {
		case p.id == m.dragActive && m.dragActive != "":
			label = "↔ " + label
			st = m.styles.focusHdr
		case p.id == m.dragOver && m.dragActive != "":
			label = "▸ " + label
			st = m.styles.dropZone
		case p.id == m.focus && m.focused:
			st = m.styles.focusHdr
		}
		return label, st
	}))

	if m.showFilters {
		lines = append(lines, m.renderLine(lay, func(p placed) (string, lipgloss.Style) {
			if !p.col.Filterable() {
				return "", m.styles.filter
			}
			if v := m.filters[p.id]; v != "" {
				return v, m.styles.filter
			}
			return "·", m.styles.filter
		}))
	}

	lines = append(lines, m.styles.rule.Render(strings.Repeat("─", lay.total)))

	for i, row := range m.rows {
		selected := i == m.cursor && m.focused
		lines = append(lines, m.renderLine(lay, func(p placed) (string, lipgloss.Style) {
			st := m.styles.cell
			if p.col.Pinned() {
				st = m.styles.pinned
			}
			if selected {
				st = m.styles.selected
			}
			return m.cell(row, p.col), st
		}))
	}
	return strings.Join(lines, "\n")
}

// String renders the grid without colors.
func (m *Model[V]) String() string {
	saved := m.noColor
	m.SetNoColor(true)
	out := m.View()
	m.SetNoColor(saved)
	return out
}

// renderLine draws one row: left-pinned cells, the visible slice of the
// unpinned cells, then the right-pinned cells ending at the right edge.
func (m *Model[V]) renderLine(lay layout, content func(placed) (string, lipgloss.Style)) string {
	var b strings.Builder

	for _, p := range lay.left {
		text, st := content(p)
		b.WriteString(st.Render(fit(text, p.width)))
	}

	pos := 0
	for _, p := range lay.center {
		from := max(p.start, m.scrollX)
		to := min(p.start+p.width, m.scrollX+lay.viewport)
		if from >= to {
			continue
		}
		if gap := from - m.scrollX - pos; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
			pos += gap
		}
		text, st := content(p)
		b.WriteString(st.Render(cut(fit(text, p.width), from-p.start, to-p.start)))
		pos += to - from
	}
	if pad := lay.viewport - pos; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	// right-pinned spans are relative to the start of the right region
	rpos := 0
	for _, p := range lay.right {
		if gap := p.start - rpos; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		text, st := content(p)
		b.WriteString(st.Render(fit(text, p.width)))
		rpos = p.start + p.width
	}
	return b.String()
}

// fit truncates or pads s to width cells, keeping the last cell as a gap.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	inner := width - 1
	if inner <= 0 {
		return strings.Repeat(" ", width)
	}
	if runewidth.StringWidth(s) > inner {
		s = runewidth.Truncate(s, inner, ellipsis)
	}
	return runewidth.FillRight(s, inner) + " "
}

// cut returns the cells [from, to) of s. A wide rune split by a boundary
// becomes spaces.
func cut(s string, from, to int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		switch {
		case col >= to:
		case col >= from && col+w <= to:
			b.WriteRune(r)
		case col+w > from:
			b.WriteString(strings.Repeat(" ", min(col+w, to)-max(col, from)))
		}
		col += w
	}
	if col < to {
		b.WriteString(strings.Repeat(" ", to-max(col, from)))
	}
	return b.String()
}
