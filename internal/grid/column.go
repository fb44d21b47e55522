// Package grid holds the column state of the directory table: order, pinning,
// sizing, visibility, filters, sorting and paging, plus the pinned-column
// offset arithmetic the renderer uses to stack sticky columns.
//
// State is an immutable snapshot. Every mutator returns a new State and leaves
// the receiver untouched, so a render pass can hold on to the snapshot it was
// given while input handlers produce the next one.
package grid

import "strings"

// PinSide is the edge a column is pinned to.
type PinSide string

const (
	PinNone  PinSide = ""
	PinLeft  PinSide = "left"
	PinRight PinSide = "right"
)

// ParsePinSide maps user input to a PinSide. Unknown values unpin.
func ParsePinSide(s string) PinSide {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return PinLeft
	case "right", "r":
		return PinRight
	default:
		return PinNone
	}
}

// Kind describes the value type held by a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindCurrency
	KindDate
	KindBool
)

// FilterKind selects the column filter predicate.
type FilterKind int

const (
	// FilterNone marks a column that cannot be filtered.
	FilterNone FilterKind = iota
	// FilterIncludes is a case-insensitive substring match on the raw value.
	FilterIncludes
	// FilterEquals is an exact match; used for booleans.
	FilterEquals
)

// ColumnDef is the static schema entry for a column.
type ColumnDef struct {
	ID     string
	Header string
	Kind   Kind
	Filter FilterKind
}

// Filterable reports whether the column accepts a column filter.
func (d ColumnDef) Filterable() bool {
	return d.Filter != FilterNone
}

// GlobalFilterable reports whether the global search looks at this column.
// Only string and numeric values take part.
func (d ColumnDef) GlobalFilterable() bool {
	switch d.Kind {
	case KindString, KindInt, KindCurrency:
		return true
	default:
		return false
	}
}

// SortDescFirst reports whether the first sort toggle should be descending.
// Strings sort ascending first, everything else descending first.
func (d ColumnDef) SortDescFirst() bool {
	return d.Kind != KindString
}

// Column is a column's current state.
type Column struct {
	ColumnDef
	Size    int
	Pin     PinSide
	Visible bool
}

// Pinned reports whether the column sticks to an edge.
func (c Column) Pinned() bool {
	return c.Pin == PinLeft || c.Pin == PinRight
}
