// Package rowmodel derives the visible rows of the table from the raw
// records and a grid.State: where-predicate, column filters, global search,
// sorting and pagination, in that order.
package rowmodel

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// Record is a row that can report its raw value for a column id.
type Record interface {
	Field(id string) any
}

// Predicate is an extra row filter applied before everything else.
type Predicate interface {
	Match(r Record) (bool, error)
}

// SearchMode selects how the global search matches rows.
type SearchMode string

const (
	// SearchSubstring keeps rows where any searchable cell contains the
	// query, ignoring case.
	SearchSubstring SearchMode = "substring"
	// SearchFuzzy keeps rows whose searchable text fuzzy-matches the query.
	SearchFuzzy SearchMode = "fuzzy"
)

// Options tunes Compute.
type Options struct {
	Where  Predicate
	Search SearchMode
}

// Result is the derived row model.
type Result[R Record] struct {
	// Rows holds every row that passed filtering, in sorted order.
	Rows []R
	// Page holds the rows of the current page.
	Page []R
	// Total is the number of input rows.
	Total     int
	PageIndex int
	PageCount int
	// WhereErrors counts rows the where-predicate could not evaluate; they
	// are excluded.
	WhereErrors int
}

// Filtered is the number of rows left after filtering.
func (r Result[R]) Filtered() int { return len(r.Rows) }

// CanPrev reports whether there is a page before the current one.
func (r Result[R]) CanPrev() bool { return r.PageIndex > 0 }

// CanNext reports whether there is a page after the current one.
func (r Result[R]) CanNext() bool { return r.PageIndex+1 < r.PageCount }

// Compute derives the row model. It never modifies rows.
func Compute[R Record](rows []R, st grid.State, opts Options) Result[R] {
	res := Result[R]{Total: len(rows)}

	kept := make([]R, 0, len(rows))
	for _, r := range rows {
		if opts.Where != nil {
			ok, err := opts.Where.Match(r)
			if err != nil {
				res.WhereErrors++
				continue
			}
			if !ok {
				continue
			}
		}
		if !matchColumnFilters(r, st) {
			continue
		}
		kept = append(kept, r)
	}

	kept = applyGlobal(kept, st, opts.Search)
	res.Rows = Sort(kept, st)

	page := st.Page()
	res.PageCount = PageCount(len(res.Rows), page.Size)
	res.PageIndex = min(page.Index, max(res.PageCount-1, 0))
	res.Page = Paginate(res.Rows, Window{Offset: res.PageIndex * page.Size, Limit: page.Size})
	return res
}

func matchColumnFilters(r Record, st grid.State) bool {
	for _, f := range st.ColumnFilters() {
		c, ok := st.Column(f.ID)
		if !ok {
			continue
		}
		v := r.Field(f.ID)
		switch c.Filter {
		case grid.FilterIncludes:
			if !containsFold(text(v), f.Value) {
				return false
			}
		case grid.FilterEquals:
			b, isBool := v.(bool)
			if !isBool || b != f.Bool() {
				return false
			}
		}
	}
	return true
}

func applyGlobal[R Record](rows []R, st grid.State, mode SearchMode) []R {
	q := st.GlobalFilter()
	if q == "" {
		return rows
	}
	searchable := make([]string, 0, len(st.Columns()))
	for _, c := range st.Columns() {
		if c.GlobalFilterable() {
			searchable = append(searchable, c.ID)
		}
	}

	if mode == SearchFuzzy {
		haystack := make([]string, len(rows))
		for i, r := range rows {
			parts := make([]string, len(searchable))
			for j, id := range searchable {
				parts[j] = text(r.Field(id))
			}
			haystack[i] = strings.Join(parts, " ")
		}
		hit := make([]bool, len(rows))
		for _, m := range fuzzy.Find(q, haystack) {
			hit[m.Index] = true
		}
		out := make([]R, 0, len(rows))
		for i, r := range rows {
			if hit[i] {
				out = append(out, r)
			}
		}
		return out
	}

	out := make([]R, 0, len(rows))
	for _, r := range rows {
		for _, id := range searchable {
			if containsFold(text(r.Field(id)), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func text(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
