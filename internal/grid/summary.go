package grid

import (
	"fmt"
	"strings"
)

// NoSummary is shown when nothing has been applied to the table.
const NoSummary = "No filters, sorting, pinning, or reordering applied"

// Summary lists the filters, sorting, pinning and reordering applied to the
// state, one entry per item.
func Summary(s State) []string {
	var out []string
	if s.globalFilter != "" {
		out = append(out, fmt.Sprintf("Global search: %q", s.globalFilter))
	}
	for _, f := range s.filters {
		value := f.Value
		if c, ok := s.Column(f.ID); ok && c.Filter == FilterEquals {
			value = YesNo(f.Bool())
		}
		out = append(out, fmt.Sprintf("%s: %s", f.ID, value))
	}
	for _, k := range s.sorting {
		dir := "Ascending"
		if k.Desc {
			dir = "Descending"
		}
		out = append(out, fmt.Sprintf("%s: %s", k.ID, dir))
	}
	if left := ids(s.LeftPinned()); len(left) > 0 {
		out = append(out, "Left pinned: "+strings.Join(left, ", "))
	}
	if right := ids(s.RightPinned()); len(right) > 0 {
		out = append(out, "Right pinned: "+strings.Join(right, ", "))
	}
	if !s.IsDefaultOrder() {
		var labels []string
		for _, c := range s.cols {
			if c.Visible {
				labels = append(labels, c.Header)
			}
		}
		if len(labels) > 0 {
			out = append(out, "Column order: "+strings.Join(labels, ", "))
		}
	}
	return out
}

// SummaryLine joins Summary into the single line shown under the table.
func SummaryLine(s State) string {
	items := Summary(s)
	if len(items) == 0 {
		return NoSummary
	}
	return "Applied: " + strings.Join(items, ", ")
}

// YesNo renders a boolean the way the table shows it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func ids(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.ID
	}
	return out
}
