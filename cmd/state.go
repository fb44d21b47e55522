package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/oakwood-commons/dirtab/internal/cel"
	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
)

var (
	errUnknownColumn = errors.New("unknown column")
	errBadFlag       = errors.New("invalid flag value")
)

// stateFlags is the table state requested on the command line.
type stateFlags struct {
	Search   string
	Filters  []string // col=value
	Sorts    []string // col[:asc|desc]
	PinLeft  []string
	PinRight []string
	Hide     []string
	Order    []string
	Page     int // 1-based; 0 keeps the first page
	PageSize int
}

// buildState applies the flags to a fresh state. Page is applied last since
// filters and sorting reset it.
func buildState(cfg config.Config, f stateFlags) (grid.State, error) {
	st := grid.New(employee.Columns(), cfg.GridOptions())

	check := func(ids []string) error {
		for _, id := range ids {
			if _, ok := st.Column(id); !ok {
				return fmt.Errorf("%w %q (known: %s)", errUnknownColumn, id, strings.Join(employee.ColumnIDs(), ", "))
			}
		}
		return nil
	}

	for _, ids := range [][]string{f.Order, f.PinLeft, f.PinRight, f.Hide} {
		if err := check(ids); err != nil {
			return st, err
		}
	}
	st = st.SetOrder(f.Order)
	for _, id := range f.PinLeft {
		st = st.Pin(id, grid.PinLeft)
	}
	for _, id := range f.PinRight {
		st = st.Pin(id, grid.PinRight)
	}
	for _, id := range f.Hide {
		st = st.SetVisible(id, false)
	}

	keys := make([]grid.SortKey, 0, len(f.Sorts))
	for _, s := range f.Sorts {
		k, err := parseSort(s)
		if err != nil {
			return st, err
		}
		if err := check([]string{k.ID}); err != nil {
			return st, err
		}
		keys = append(keys, k)
	}
	st = st.SetSorting(keys)

	for _, raw := range f.Filters {
		id, value, ok := strings.Cut(raw, "=")
		if !ok {
			return st, fmt.Errorf("%w: --filter %q, want column=value", errBadFlag, raw)
		}
		id = strings.TrimSpace(id)
		if err := check([]string{id}); err != nil {
			return st, err
		}
		if c, _ := st.Column(id); !c.Filterable() {
			return st, fmt.Errorf("%w: column %q cannot be filtered", errBadFlag, id)
		}
		st = st.SetColumnFilter(id, value)
	}
	st = st.SetGlobalFilter(f.Search)

	// the requested page as a row window: negative page or size is rejected
	win := rowmodel.Window{Limit: f.PageSize}
	if f.Page != 0 {
		win.Offset = (f.Page - 1) * max(f.PageSize, 1)
	}
	if err := win.Validate(); err != nil {
		return st, fmt.Errorf("%w: --page %d --page-size %d: %w", errBadFlag, f.Page, f.PageSize, err)
	}
	if f.PageSize != 0 {
		if !slices.Contains(cfg.Pagination.PageSizes, f.PageSize) {
			return st, fmt.Errorf("%w: --page-size %d, want one of %v", errBadFlag, f.PageSize, cfg.Pagination.PageSizes)
		}
		st = st.SetPageSize(f.PageSize)
	}
	if f.Page > 0 {
		st = st.SetPageIndex(f.Page - 1)
	}
	return st, nil
}

// parseSort reads "col", "col:asc" or "col:desc".
func parseSort(s string) (grid.SortKey, error) {
	id, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	k := grid.SortKey{ID: id}
	switch strings.ToLower(dir) {
	case "", "asc":
	case "desc":
		k.Desc = true
	default:
		return k, fmt.Errorf("%w: --sort %q, direction must be asc or desc", errBadFlag, s)
	}
	if id == "" {
		return k, fmt.Errorf("%w: --sort %q", errBadFlag, s)
	}
	return k, nil
}

// compileWhere returns nil for an empty expression.
func compileWhere(expr string) (rowmodel.Predicate, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	ev, err := cel.NewEvaluator(employee.ColumnIDs())
	if err != nil {
		return nil, err
	}
	p, err := ev.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("--where: %w", err)
	}
	return p, nil
}
