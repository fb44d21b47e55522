package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/formatter"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
	"github.com/oakwood-commons/dirtab/pkg/logger"
)

var errBinaryToTerminal = errors.New("xlsx output needs --out or a redirected stdout")

// printRequest is everything writeOutput needs for one non-interactive run.
type printRequest struct {
	Config  config.Config
	State   grid.State
	Rows    []employee.Employee
	Where   rowmodel.Predicate
	Format  formatter.Format
	AllRows bool
	Width   int
	Out     string
}

// writeOutput computes the row model and writes the current page (or every
// filtered row) to req.Out, or to stdout when it is empty.
func writeOutput(ctx context.Context, stdout io.Writer, req printRequest) error {
	log := logger.FromContext(ctx)
	res := rowmodel.Compute(req.Rows, req.State, rowmodel.Options{Where: req.Where, Search: req.Config.SearchMode()})
	st := req.State.SetPageIndex(res.PageIndex)
	if res.WhereErrors > 0 {
		log.Info("rows skipped by where expression", logger.KeyRows, res.WhereErrors)
	}

	rows := res.Page
	if req.AllRows {
		rows = res.Rows
	}
	width := req.Width
	if width <= 0 && req.Format == formatter.FormatTable {
		width, _ = detectTerminalSize()
	}
	v := formatter.View{
		Columns:   st.VisibleColumns(),
		Rows:      formatter.Records(rows),
		Formatter: req.Config.Formatter(),
		Sorting:   st.Sorting(),
		Width:     width,
		Scale:     req.Config.Table.CellScale,
	}
	if req.Format == formatter.FormatTable || req.Format == formatter.FormatMarkdown {
		v.Footer = footerLines(res, st, len(rows), req.AllRows)
	}

	if req.Out == "" {
		if req.Format.Binary() && stdoutIsTerminal() {
			return errBinaryToTerminal
		}
		return formatter.Write(stdout, v, req.Format)
	}

	f, err := os.Create(req.Out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := formatter.Write(f, v, req.Format); err != nil {
		_ = f.Close()
		return err
	}
	log.V(1).Info("output written", logger.KeyPath, req.Out, logger.KeyFormat, string(req.Format), logger.KeyRows, len(rows))
	return f.Close()
}

func footerLines(res rowmodel.Result[employee.Employee], st grid.State, shown int, all bool) []string {
	out := []string{fmt.Sprintf("Showing %d of %d rows", shown, res.Filtered())}
	if !all {
		out = append(out, fmt.Sprintf("Page %d of %d  Show %d", res.PageIndex+1, max(res.PageCount, 1), st.Page().Size))
	}
	return append(out, grid.SummaryLine(st))
}
