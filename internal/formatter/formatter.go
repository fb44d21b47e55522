// Package formatter writes the current table view in the non-interactive
// output formats.
package formatter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/dirtab/internal/format"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
	"github.com/oakwood-commons/dirtab/internal/ui/table"
)

// Format names an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
)

// Formats lists every supported output format.
var Formats = []Format{
	FormatTable, FormatJSON, FormatYAML, FormatTOML,
	FormatCSV, FormatMarkdown, FormatHTML, FormatXLSX,
}

// ErrUnknownFormat is returned for output formats dirtab cannot write.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "text":
		return FormatTable, nil
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	case FormatTable, FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatMarkdown, FormatHTML, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Binary reports whether f produces non-text output.
func (f Format) Binary() bool { return f == FormatXLSX }

// View is the part of the table an output format writes: the visible
// columns in display order and the rows after filtering and sorting.
type View struct {
	Columns   []grid.Column
	Rows      []rowmodel.Record
	Formatter format.Formatter
	Sorting   []grid.SortKey

	// Width and Scale size the table format; zero Width is unbounded.
	Width int
	Scale int
	// Footer lines are appended after the table and markdown formats.
	Footer []string
	// Title is used by the html and xlsx formats.
	Title string
}

// Records adapts a typed row slice for View.Rows.
func Records[R rowmodel.Record](rows []R) []rowmodel.Record {
	out := make([]rowmodel.Record, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// Cell is the formatted text of column c in row r.
func (v View) Cell(r rowmodel.Record, c grid.Column) string {
	return v.Formatter.Cell(c.ColumnDef, r.Field(c.ID))
}

func (v View) title() string {
	if v.Title != "" {
		return v.Title
	}
	return "Employee directory"
}

// Write renders v to w in format f.
func Write(w io.Writer, v View, f Format) error {
	switch f {
	case FormatTable:
		return writeTable(w, v)
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	case FormatTOML:
		return writeTOML(w, v)
	case FormatCSV:
		return writeCSV(w, v)
	case FormatMarkdown:
		return writeMarkdown(w, v)
	case FormatHTML:
		return writeHTML(w, v)
	case FormatXLSX:
		return writeXLSX(w, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func writeTable(w io.Writer, v View) error {
	m := table.NewModel(v.Cell)
	m.SetNoColor(true)
	m.SetScale(v.Scale)
	m.SetColumns(v.Columns)
	m.SetRows(v.Rows)
	m.SetSorting(v.Sorting)
	m.SetSize(v.Width)
	if _, err := fmt.Fprintln(w, m.String()); err != nil {
		return err
	}
	return writeFooter(w, v.Footer)
}

func writeFooter(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
