package grid

import (
	"slices"
	"strings"
)

// Sizing and paging defaults.
const (
	DefaultColumnSize = 200
	MinColumnSize     = 60
	MaxColumnSize     = 600
	DefaultPageSize   = 10

	// ResizeStep and ResizeShiftStep are the keyboard resize increments.
	ResizeStep      = 10
	ResizeShiftStep = 20
)

// DefaultPageSizes are the page sizes offered by the page-size selector.
var DefaultPageSizes = []int{10, 20, 30, 40, 50}

// Options configures sizing and paging limits for a State.
type Options struct {
	DefaultSize     int
	MinSize         int
	MaxSize         int
	PageSizes       []int
	DefaultPageSize int
}

// DefaultOptions returns the built-in limits.
func DefaultOptions() Options {
	return Options{
		DefaultSize:     DefaultColumnSize,
		MinSize:         MinColumnSize,
		MaxSize:         MaxColumnSize,
		PageSizes:       slices.Clone(DefaultPageSizes),
		DefaultPageSize: DefaultPageSize,
	}
}

// normalized fills zero fields from the defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MinSize <= 0 {
		o.MinSize = d.MinSize
	}
	if o.MaxSize <= 0 || o.MaxSize < o.MinSize {
		o.MaxSize = max(d.MaxSize, o.MinSize)
	}
	if o.DefaultSize <= 0 {
		o.DefaultSize = d.DefaultSize
	}
	o.DefaultSize = min(max(o.DefaultSize, o.MinSize), o.MaxSize)
	if len(o.PageSizes) == 0 {
		o.PageSizes = d.PageSizes
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = o.PageSizes[0]
	}
	return o
}

// ColumnFilter is an active per-column filter. Value holds the raw input for
// substring filters and "true"/"false" for boolean filters.
type ColumnFilter struct {
	ID    string
	Value string
}

// Bool returns the boolean filter value.
func (f ColumnFilter) Bool() bool {
	return f.Value == "true"
}

// SortKey is one entry of the sort list.
type SortKey struct {
	ID   string
	Desc bool
}

// Pagination is the current page window.
type Pagination struct {
	Index int
	Size  int
}

// State is an immutable snapshot of the table's column and view state.
type State struct {
	opts         Options
	defs         []ColumnDef
	cols         []Column
	globalFilter string
	filters      []ColumnFilter
	sorting      []SortKey
	page         Pagination
}

// New builds the initial state for the given schema: schema order, default
// sizes, every column visible and unpinned, first page.
func New(defs []ColumnDef, opts Options) State {
	opts = opts.normalized()
	cols := make([]Column, len(defs))
	for i, d := range defs {
		cols[i] = Column{ColumnDef: d, Size: opts.DefaultSize, Visible: true}
	}
	return State{
		opts: opts,
		defs: slices.Clone(defs),
		cols: cols,
		page: Pagination{Size: opts.DefaultPageSize},
	}
}

func (s State) clone() State {
	s.cols = slices.Clone(s.cols)
	s.filters = slices.Clone(s.filters)
	s.sorting = slices.Clone(s.sorting)
	return s
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.cols, func(c Column) bool { return c.ID == id })
}

// Options returns the limits this state was built with.
func (s State) Options() Options { return s.opts }

// Columns returns every column in the current order.
func (s State) Columns() []Column { return slices.Clone(s.cols) }

// Column looks up a column by id.
func (s State) Column(id string) (Column, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Column{}, false
	}
	return s.cols[i], true
}

// Order returns the column ids in the current order.
func (s State) Order() []string {
	ids := make([]string, len(s.cols))
	for i, c := range s.cols {
		ids[i] = c.ID
	}
	return ids
}

// IsDefaultOrder reports whether the order still matches the schema.
func (s State) IsDefaultOrder() bool {
	for i, c := range s.cols {
		if s.defs[i].ID != c.ID {
			return false
		}
	}
	return true
}

// VisibleColumns returns the visible columns in display order: left-pinned,
// then unpinned, then right-pinned, each group keeping the column order.
func (s State) VisibleColumns() []Column {
	out := make([]Column, 0, len(s.cols))
	for _, side := range []PinSide{PinLeft, PinNone, PinRight} {
		for _, c := range s.cols {
			if c.Visible && c.Pin == side {
				out = append(out, c)
			}
		}
	}
	return out
}

// LeftPinned returns the visible left-pinned columns in order.
func (s State) LeftPinned() []Column { return s.pinned(PinLeft) }

// RightPinned returns the visible right-pinned columns in order.
func (s State) RightPinned() []Column { return s.pinned(PinRight) }

func (s State) pinned(side PinSide) []Column {
	var out []Column
	for _, c := range s.cols {
		if c.Visible && c.Pin == side {
			out = append(out, c)
		}
	}
	return out
}

// MoveColumn moves activeID to the position currently held by overID. The
// set of columns and each column's own state are unchanged.
func (s State) MoveColumn(activeID, overID string) State {
	from, to := s.indexOf(activeID), s.indexOf(overID)
	if from < 0 || to < 0 || from == to {
		return s
	}
	n := s.clone()
	moved := n.cols[from]
	n.cols = slices.Delete(n.cols, from, from+1)
	n.cols = slices.Insert(n.cols, to, moved)
	return n
}

// SetOrder puts the listed ids first, in the given order, followed by the
// remaining columns in their current order. Unknown and duplicate ids are
// ignored.
func (s State) SetOrder(ids []string) State {
	n := s.clone()
	seen := make(map[string]bool, len(ids))
	ordered := make([]Column, 0, len(s.cols))
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, s.cols[i])
	}
	for _, c := range s.cols {
		if !seen[c.ID] {
			ordered = append(ordered, c)
		}
	}
	n.cols = ordered
	return n
}

// Pin sets the pin side of a column. Order is left alone.
func (s State) Pin(id string, side PinSide) State {
	i := s.indexOf(id)
	if i < 0 || s.cols[i].Pin == side {
		return s
	}
	n := s.clone()
	n.cols[i].Pin = side
	return n
}

// ClampSize bounds a size to the configured limits.
func (s State) ClampSize(size int) int {
	return min(max(size, s.opts.MinSize), s.opts.MaxSize)
}

// Resize sets a column's size, clamped to [MinSize, MaxSize].
func (s State) Resize(id string, size int) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	size = s.ClampSize(size)
	if s.cols[i].Size == size {
		return s
	}
	n := s.clone()
	n.cols[i].Size = size
	return n
}

// ResizeBy grows or shrinks a column by delta, clamped.
func (s State) ResizeBy(id string, delta int) State {
	c, ok := s.Column(id)
	if !ok {
		return s
	}
	return s.Resize(id, c.Size+delta)
}

// SetVisible shows or hides a column.
func (s State) SetVisible(id string, visible bool) State {
	i := s.indexOf(id)
	if i < 0 || s.cols[i].Visible == visible {
		return s
	}
	n := s.clone()
	n.cols[i].Visible = visible
	return n
}

// ToggleVisible flips a column's visibility.
func (s State) ToggleVisible(id string) State {
	c, ok := s.Column(id)
	if !ok {
		return s
	}
	return s.SetVisible(id, !c.Visible)
}

// ShowAll makes every column visible.
func (s State) ShowAll() State { return s.setAllVisible(true) }

// HideAll hides every column.
func (s State) HideAll() State { return s.setAllVisible(false) }

// ResetVisibility restores the default visibility (everything shown).
func (s State) ResetVisibility() State { return s.setAllVisible(true) }

func (s State) setAllVisible(v bool) State {
	n := s.clone()
	for i := range n.cols {
		n.cols[i].Visible = v
	}
	return n
}

// GlobalFilter returns the search text.
func (s State) GlobalFilter() string { return s.globalFilter }

// SetGlobalFilter sets the search text and returns to the first page.
func (s State) SetGlobalFilter(q string) State {
	if q == s.globalFilter {
		return s
	}
	n := s.clone()
	n.globalFilter = q
	n.page.Index = 0
	return n
}

// ColumnFilters returns the active column filters in the order they were set.
func (s State) ColumnFilters() []ColumnFilter { return slices.Clone(s.filters) }

// ColumnFilter returns the active filter for a column.
func (s State) ColumnFilter(id string) (ColumnFilter, bool) {
	for _, f := range s.filters {
		if f.ID == id {
			return f, true
		}
	}
	return ColumnFilter{}, false
}

// SetColumnFilter sets or clears a column filter. Empty values clear the
// filter. Boolean columns accept true/false/yes/no; anything else, including
// "all", clears it. Columns that cannot be filtered are ignored.
func (s State) SetColumnFilter(id, value string) State {
	c, ok := s.Column(id)
	if !ok || !c.Filterable() {
		return s
	}
	value = normalizeFilterValue(c.ColumnDef, value)

	n := s.clone()
	i := slices.IndexFunc(n.filters, func(f ColumnFilter) bool { return f.ID == id })
	switch {
	case value == "" && i < 0:
		return s
	case value == "":
		n.filters = slices.Delete(n.filters, i, i+1)
	case i >= 0:
		if n.filters[i].Value == value {
			return s
		}
		n.filters[i].Value = value
	default:
		n.filters = append(n.filters, ColumnFilter{ID: id, Value: value})
	}
	n.page.Index = 0
	return n
}

func normalizeFilterValue(def ColumnDef, value string) string {
	if def.Filter != FilterEquals {
		return value
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y":
		return "true"
	case "false", "no", "n":
		return "false"
	default:
		return ""
	}
}

// ClearFilters removes the search text and every column filter.
func (s State) ClearFilters() State {
	if s.globalFilter == "" && len(s.filters) == 0 {
		return s
	}
	n := s.clone()
	n.globalFilter = ""
	n.filters = nil
	n.page.Index = 0
	return n
}

// Sorting returns the sort keys, most significant first.
func (s State) Sorting() []SortKey { return slices.Clone(s.sorting) }

// SortFor returns the sort key and its position for a column.
func (s State) SortFor(id string) (SortKey, int, bool) {
	for i, k := range s.sorting {
		if k.ID == id {
			return k, i, true
		}
	}
	return SortKey{}, -1, false
}

// ToggleSort cycles a column through first direction, the other direction,
// and unsorted. Without multi the column replaces the current sort list.
func (s State) ToggleSort(id string, multi bool) State {
	c, ok := s.Column(id)
	if !ok {
		return s
	}
	first := c.SortDescFirst()
	key, idx, sorted := s.SortFor(id)

	n := s.clone()
	n.page.Index = 0
	switch {
	case !sorted:
		k := SortKey{ID: id, Desc: first}
		if multi {
			n.sorting = append(n.sorting, k)
		} else {
			n.sorting = []SortKey{k}
		}
	case key.Desc == first:
		if multi {
			n.sorting[idx].Desc = !first
		} else {
			n.sorting = []SortKey{{ID: id, Desc: !first}}
		}
	default:
		if multi {
			n.sorting = slices.Delete(n.sorting, idx, idx+1)
		} else {
			n.sorting = nil
		}
	}
	return n
}

// SetSorting replaces the sort list. Unknown columns are dropped.
func (s State) SetSorting(keys []SortKey) State {
	n := s.clone()
	n.sorting = nil
	for _, k := range keys {
		if _, ok := s.Column(k.ID); ok {
			n.sorting = append(n.sorting, k)
		}
	}
	n.page.Index = 0
	return n
}

// Page returns the current page window.
func (s State) Page() Pagination { return s.page }

// SetPageIndex jumps to a page. Negative indexes go to the first page.
func (s State) SetPageIndex(i int) State {
	i = max(i, 0)
	if i == s.page.Index {
		return s
	}
	n := s.clone()
	n.page.Index = i
	return n
}

// ClampPage keeps the page index inside [0, pageCount).
func (s State) ClampPage(pageCount int) State {
	return s.SetPageIndex(min(s.page.Index, max(pageCount-1, 0)))
}

// NextPage advances one page if there is one.
func (s State) NextPage(pageCount int) State {
	if s.page.Index+1 >= pageCount {
		return s
	}
	return s.SetPageIndex(s.page.Index + 1)
}

// PrevPage goes back one page if there is one.
func (s State) PrevPage() State {
	return s.SetPageIndex(s.page.Index - 1)
}

// SetPageSize switches to one of the configured page sizes. The page index is
// recomputed so the row at the top of the current page stays visible.
func (s State) SetPageSize(size int) State {
	if !slices.Contains(s.opts.PageSizes, size) || size == s.page.Size {
		return s
	}
	n := s.clone()
	top := s.page.Index * s.page.Size
	n.page = Pagination{Index: top / size, Size: size}
	return n
}

// CyclePageSize moves to the next (dir > 0) or previous page size, wrapping.
func (s State) CyclePageSize(dir int) State {
	sizes := s.opts.PageSizes
	i := slices.Index(sizes, s.page.Size)
	if i < 0 {
		return s.SetPageSize(sizes[0])
	}
	step := 1
	if dir < 0 {
		step = len(sizes) - 1
	}
	return s.SetPageSize(sizes[(i+step)%len(sizes)])
}
