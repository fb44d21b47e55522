package ui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dirtab/pkg/logger"
)

// Run starts the interactive table and blocks until the user quits. It
// returns the final model so callers can report the state the user left.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) (*Model, error) {
	m := New(ctx, opts)
	if opts.Width > 0 && opts.Height > 0 {
		progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))
	}
	progOpts = append(progOpts, tea.WithContext(ctx))

	log := logger.FromContext(ctx)
	log.V(1).Info("starting interactive table", logger.KeyRows, len(opts.Rows))

	final, err := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if fm, ok := final.(*Model); ok && fm != nil {
		return fm, err
	}
	return m, err
}
