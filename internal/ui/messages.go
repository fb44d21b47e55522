package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/pkg/logger"
)

// fileChangedMsg reports that the watched data file settled after a change.
type fileChangedMsg struct{}

// reloadedMsg carries the result of re-reading the data source.
type reloadedMsg struct {
	rows []employee.Employee
	err  error
}

// waitForChange blocks until the next change signal. A nil or closed
// channel ends the subscription.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// watchErrMsg carries an error from the file watcher.
type watchErrMsg struct{ err error }

func waitForWatchErr(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return watchErrMsg{err: err}
	}
}

func (m *Model) reloadCmd() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	ctx := m.ctx
	reload := m.reload
	return func() tea.Msg {
		rows, err := reload(ctx)
		return reloadedMsg{rows: rows, err: err}
	}
}

func (m *Model) applyReload(msg reloadedMsg) {
	if msg.err != nil {
		m.log().Error(msg.err, "reload failed")
		m.setError(fmt.Sprintf("reload failed: %v", msg.err))
		return
	}
	m.log().Info("data reloaded", logger.KeyRows, len(msg.rows))
	m.status, m.statusErr = fmt.Sprintf("Reloaded %d rows", len(msg.rows)), false
	m.SetRows(msg.rows)
}
