package cmd

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
	"github.com/oakwood-commons/dirtab/internal/ui"
	"github.com/oakwood-commons/dirtab/internal/watcher"
	"github.com/oakwood-commons/dirtab/pkg/logger"
)

func runInteractive(ctx context.Context, cfg config.Config, st grid.State, rows []employee.Employee, where rowmodel.Predicate, src rowSource) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	w, h := width, height
	if w <= 0 || h <= 0 {
		dw, dh := detectTerminalSize()
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}

	opts := ui.Options{
		Rows:    rows,
		State:   st,
		Config:  cfg,
		Where:   where,
		NoColor: noColor,
		Width:   w,
		Height:  h,
	}
	if src.reloadable() {
		opts.Reload = src.load
	}
	if watch {
		wt, err := watcher.New(src.Path, watcher.WithDebounce(watcher.NewDebouncer(cfg.Debounce())))
		if err != nil {
			return err
		}
		go wt.Run(ctx)
		opts.Changes = wt.Changes()
		opts.WatchErrors = wt.Errors()
	}

	progOpts, cleanup := getProgramOptions(src.fromStdin())
	defer cleanup()

	final, err := ui.Run(ctx, opts, progOpts...)
	if err != nil {
		return fmt.Errorf("interactive table: %w", err)
	}
	log.V(1).Info("interactive table closed", "summary", grid.SummaryLine(final.State()))
	return nil
}
