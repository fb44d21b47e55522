package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/grid"
	"github.com/oakwood-commons/dirtab/internal/rowmodel"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func fixture() []employee.Employee {
	return []employee.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", Phone: "555-0101", Department: "Computers", Salary: 120000, HireDate: day(3), IsActive: true},
		{ID: 2, FirstName: "bob", LastName: "Builder", Email: "bob@x.io", Phone: "555-0102", Department: "Tools", Salary: 45000, HireDate: day(1), IsActive: false},
		{ID: 3, FirstName: "Cleo", LastName: "Patra", Email: "cleo@x.io", Phone: "555-0199", Department: "Home", Salary: 87000, HireDate: day(2), IsActive: true},
		{ID: 4, FirstName: "Dan", LastName: "Brown", Email: "dan@x.io", Phone: "555-0104", Department: "Books", Salary: 45000, HireDate: day(5), IsActive: true},
		{ID: 5, FirstName: "Eve", LastName: "Adams", Email: "eve@x.io", Phone: "555-0105", Department: "Computers", Salary: 64000, HireDate: day(4), IsActive: false},
	}
}

func newTestModel(rows []employee.Employee) *Model {
	return New(context.Background(), Options{Rows: rows, NoColor: true, Width: 160})
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "ctrl+right":
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl}
	case "ctrl+shift+left":
		return tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl | tea.ModShift}
	}
	return tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
}

// press sends keys in order and returns the command from the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func pageIDs(m *Model) []int {
	out := make([]int, len(m.Result().Page))
	for i, r := range m.Result().Page {
		out[i] = r.ID
	}
	return out
}

func TestNew_InitialView(t *testing.T) {
	m := newTestModel(fixture())

	out := m.Render()
	assert.Contains(t, out, "Showing 5 of 5 rows")
	assert.Contains(t, out, "Page 1 of 1  Show 10")
	assert.Contains(t, out, grid.NoSummary)
	assert.Contains(t, out, "First Name")
	assert.Contains(t, out, "Lovelace")
	assert.Equal(t, employee.ColID, m.Focus())
	assert.Equal(t, 0, m.Cursor())
	assert.Nil(t, m.Init())
}

func TestNew_EmptyRows(t *testing.T) {
	m := newTestModel(nil)

	out := m.Render()
	assert.Contains(t, out, "Showing 0 of 0 rows")
	assert.Contains(t, out, "Page 1 of 1")
	assert.Contains(t, out, "No matching rows")
}

func TestSearch_LiveThenKeepAndClear(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "/", "c", "o", "m", "p")
	assert.Equal(t, "comp", m.State().GlobalFilter())
	assert.Equal(t, []int{1, 5}, pageIDs(m))
	assert.Contains(t, m.Render(), "Showing 2 of 2 rows")

	press(m, "enter")
	assert.Equal(t, "comp", m.State().GlobalFilter())
	assert.Contains(t, m.Render(), `Global search: "comp"`)

	press(m, "/", "esc")
	assert.Empty(t, m.State().GlobalFilter())
	assert.Equal(t, 5, m.Result().Filtered())
}

func TestFilter_ActiveCycles(t *testing.T) {
	m := newTestModel(fixture())
	for range 8 {
		press(m, "l")
	}
	require.Equal(t, employee.ColIsActive, m.Focus())

	press(m, "f")
	assert.Equal(t, []int{1, 3, 4}, pageIDs(m))
	assert.Contains(t, m.Render(), "isActive: Yes")

	press(m, "f")
	assert.Equal(t, []int{2, 5}, pageIDs(m))

	press(m, "f")
	assert.Equal(t, 5, m.Result().Filtered())
	assert.Empty(t, m.State().ColumnFilters())
}

func TestFilter_TextColumn(t *testing.T) {
	m := newTestModel(fixture())
	press(m, "l", "f", "e")
	assert.Equal(t, []int{3, 5}, pageIDs(m))
	assert.Contains(t, m.Render(), "Filter First Name:")

	press(m, "enter")
	assert.Contains(t, m.Render(), "firstName: e")

	press(m, "f", "esc")
	assert.Equal(t, 5, m.Result().Filtered())
}

func TestFilter_NotFilterable(t *testing.T) {
	m := newTestModel(fixture())
	press(m, "f")
	assert.Equal(t, "ID cannot be filtered", m.Status())
	assert.Contains(t, m.Render(), "ID cannot be filtered")

	press(m, "j")
	assert.Empty(t, m.Status())
}

func TestClear_RemovesSearchAndFilters(t *testing.T) {
	m := newTestModel(fixture())
	press(m, "/", "o", "enter", "l", "f", "a", "enter")
	require.NotEmpty(t, m.State().ColumnFilters())

	press(m, "esc")
	assert.Empty(t, m.State().GlobalFilter())
	assert.Empty(t, m.State().ColumnFilters())
	assert.Contains(t, m.Render(), grid.NoSummary)
}

func TestSort_Cycle(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "s")
	assert.Equal(t, []grid.SortKey{{ID: employee.ColID, Desc: true}}, m.State().Sorting())
	assert.Equal(t, []int{5, 4, 3, 2, 1}, pageIDs(m))
	assert.Contains(t, m.Render(), "ID ↓")

	press(m, "s")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pageIDs(m))

	press(m, "s")
	assert.Empty(t, m.State().Sorting())
}

func TestSort_Multi(t *testing.T) {
	m := newTestModel(fixture())
	for range 6 {
		press(m, "l")
	}
	require.Equal(t, employee.ColSalary, m.Focus())
	press(m, "s", "h", "h", "h", "h", "h", "S")

	assert.Equal(t, []grid.SortKey{
		{ID: employee.ColSalary, Desc: true},
		{ID: employee.ColFirstName},
	}, m.State().Sorting())
	assert.Equal(t, []int{1, 3, 5, 2, 4}, pageIDs(m))
}

func TestPin_LeftRightNone(t *testing.T) {
	m := newTestModel(fixture())
	press(m, "l", "l", "[")

	c, _ := m.State().Column(employee.ColLastName)
	assert.Equal(t, grid.PinLeft, c.Pin)
	assert.Equal(t, employee.ColLastName, m.State().VisibleColumns()[0].ID)
	assert.Contains(t, m.Render(), "Left pinned: lastName")

	press(m, "]")
	assert.Contains(t, m.Render(), "Right pinned: lastName")

	press(m, "=")
	assert.Contains(t, m.Render(), grid.NoSummary)
}

func TestResize(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "ctrl+right")
	c, _ := m.State().Column(employee.ColID)
	assert.Equal(t, 210, c.Size)

	press(m, "ctrl+shift+left")
	c, _ = m.State().Column(employee.ColID)
	assert.Equal(t, 190, c.Size)

	press(m, "{")
	c, _ = m.State().Column(employee.ColID)
	assert.Equal(t, 180, c.Size)
}

func TestDrag_DropMovesColumn(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "m", "l")
	assert.Contains(t, m.Render(), "Moving ID")

	press(m, "enter")
	assert.Equal(t, []string{employee.ColFirstName, employee.ColID}, m.State().Order()[:2])
	assert.Equal(t, employee.ColID, m.Focus())
	assert.Contains(t, m.Render(), "Column order: First Name, ID")
}

func TestDrag_CancelKeepsOrder(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "m", "l", "l", "esc")
	assert.Equal(t, employee.ColumnIDs(), m.State().Order())
	assert.Contains(t, m.Render(), grid.NoSummary)
}

func TestVisibility(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "v")
	c, _ := m.State().Column(employee.ColID)
	assert.False(t, c.Visible)
	assert.Equal(t, employee.ColFirstName, m.Focus())

	press(m, "X")
	assert.Empty(t, m.State().VisibleColumns())
	assert.Empty(t, m.Focus())

	press(m, "R")
	assert.Len(t, m.State().VisibleColumns(), len(employee.Columns()))
	assert.NotEmpty(t, m.Focus())
}

func TestColumnMenu(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "c")
	out := m.Render()
	assert.Contains(t, out, "> [x] ID")
	assert.Contains(t, out, "[x] Active")

	press(m, "space")
	assert.Contains(t, m.Render(), "> [ ] ID")

	press(m, "j", "x")
	assert.Contains(t, m.Render(), "> [ ] First Name")

	press(m, "a")
	assert.Len(t, m.State().VisibleColumns(), len(employee.Columns()))

	press(m, "esc")
	assert.Contains(t, m.Render(), "Lovelace")
}

func TestPaging(t *testing.T) {
	rows := employee.Generate(employee.GenerateOptions{Count: 23, Seed: 7})
	m := newTestModel(rows)
	assert.Contains(t, m.Render(), "Page 1 of 3  Show 10")

	press(m, "j", "n")
	assert.Contains(t, m.Render(), "Page 2 of 3")
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 11, pageIDs(m)[0])

	press(m, "n", "n")
	assert.Contains(t, m.Render(), "Page 3 of 3")
	assert.Len(t, m.Result().Page, 3)

	press(m, "+")
	assert.Contains(t, m.Render(), "Page 2 of 2  Show 20")

	press(m, "-")
	assert.Contains(t, m.Render(), "Page 3 of 3  Show 10")

	press(m, "p")
	assert.Contains(t, m.Render(), "Page 2 of 3")
}

func TestCursor(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "j", "j")
	assert.Equal(t, 2, m.Cursor())

	press(m, "G")
	assert.Equal(t, 4, m.Cursor())

	press(m, "j")
	assert.Equal(t, 4, m.Cursor())

	press(m, "g")
	assert.Equal(t, 0, m.Cursor())
}

func TestWindowSize_LimitsRows(t *testing.T) {
	m := newTestModel(fixture())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 8})

	lines := strings.Split(m.Render(), "\n")
	assert.LessOrEqual(t, len(lines), 8)
	assert.Contains(t, m.Render(), "Lovelace")

	press(m, "j", "j", "j", "j")
	out := m.Render()
	assert.Contains(t, out, "Adams")
	assert.NotContains(t, out, "Lovelace")
}

func TestHelp(t *testing.T) {
	m := newTestModel(fixture())

	press(m, "?")
	out := m.Render()
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "toggle help")

	press(m, "?")
	assert.Contains(t, m.Render(), "Lovelace")
}

func TestQuit(t *testing.T) {
	m := newTestModel(fixture())

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReload(t *testing.T) {
	m := New(context.Background(), Options{
		Rows:    fixture(),
		NoColor: true,
		Reload: func(context.Context) ([]employee.Employee, error) {
			return fixture()[:2], nil
		},
	})

	cmd := press(m, "r")
	assert.Equal(t, "Reloading...", m.Status())
	require.NotNil(t, cmd)

	m.Update(cmd())
	assert.Equal(t, "Reloaded 2 rows", m.Status())
	assert.Contains(t, m.Render(), "Showing 2 of 2 rows")
}

func TestReload_Error(t *testing.T) {
	m := newTestModel(fixture())
	m.Update(reloadedMsg{err: errors.New("disk gone")})

	assert.Equal(t, "reload failed: disk gone", m.Status())
	assert.Equal(t, 5, m.Result().Total)
}

func TestReload_Unavailable(t *testing.T) {
	m := newTestModel(fixture())

	assert.Nil(t, press(m, "r"))
	assert.Contains(t, m.Status(), "cannot be reloaded")
}

func TestFileChanged_TriggersReload(t *testing.T) {
	changes := make(chan struct{}, 1)
	m := New(context.Background(), Options{
		Rows: fixture(),
		Reload: func(context.Context) ([]employee.Employee, error) {
			return nil, nil
		},
		Changes: changes,
	})

	init := m.Init()
	require.NotNil(t, init)
	changes <- struct{}{}
	assert.IsType(t, fileChangedMsg{}, init())

	_, cmd := m.Update(fileChangedMsg{})
	assert.NotNil(t, cmd)

	close(changes)
	assert.Nil(t, waitForChange(changes)())
}

type failOn int

func (f failOn) Match(r rowmodel.Record) (bool, error) {
	if r.Field(employee.ColID) == int(f) {
		return false, errors.New("boom")
	}
	return true, nil
}

func TestWhere_ErrorsReported(t *testing.T) {
	m := New(context.Background(), Options{Rows: fixture(), NoColor: true, Where: failOn(2)})

	assert.Equal(t, []int{1, 3, 4, 5}, pageIDs(m))
	assert.Contains(t, m.Render(), "1 rows skipped")
}

func TestFilterRow(t *testing.T) {
	m := newTestModel(fixture())
	press(m, "l", "f", "d", "enter")
	require.Equal(t, []int{1, 4}, pageIDs(m))

	press(m, "F")
	assert.Contains(t, m.Render(), "·")
}

func TestKeysFor(t *testing.T) {
	assert.Equal(t, []string{"k", "up"}, KeysFor(DefaultKeyBindings, ActionUp))
	assert.Equal(t, []string{"q", "ctrl+c"}, KeysFor(DefaultKeyBindings, ActionQuit))
	assert.Empty(t, KeysFor(DefaultKeyBindings, ActionNone))
}

func TestWatchError_ShownOnStatusLine(t *testing.T) {
	errs := make(chan error, 1)
	m := New(context.Background(), Options{Rows: fixture(), NoColor: true, WatchErrors: errs})

	init := m.Init()
	require.NotNil(t, init)
	errs <- errors.New("too many open files")
	msg := init()
	require.IsType(t, watchErrMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Render(), "watch: too many open files")

	close(errs)
	assert.Nil(t, waitForWatchErr(errs)())
}
