package rowmodel

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

// Sort returns a sorted copy of rows using the state's sort keys. The sort
// is stable, so rows that compare equal keep their input order.
func Sort[R Record](rows []R, st grid.State) []R {
	out := slices.Clone(rows)
	keys := st.Sorting()
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		for _, k := range keys {
			c := Compare(a.Field(k.ID), b.Field(k.ID))
			if k.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

// Compare orders two raw values of the same column. Strings compare without
// case first; nil sorts before everything else.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		if c := cmp.Compare(strings.ToLower(x), strings.ToLower(y)); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	case int:
		y, _ := b.(int)
		return cmp.Compare(x, y)
	case int64:
		y, _ := b.(int64)
		return cmp.Compare(x, y)
	case float64:
		y, _ := b.(float64)
		return cmp.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	default:
		return cmp.Compare(text(a), text(b))
	}
}
