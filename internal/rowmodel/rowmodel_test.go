package rowmodel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/grid"
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

func state() grid.State {
	return grid.New(employee.Columns(), grid.DefaultOptions())
}

func rowIDs(rows []employee.Employee) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestCompute_NoState(t *testing.T) {
	res := Compute(fixture(), state(), Options{})
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 5, res.Filtered())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rowIDs(res.Page))
	assert.Equal(t, 1, res.PageCount)
	assert.False(t, res.CanPrev())
	assert.False(t, res.CanNext())
}

func TestCompute_ActiveFilterYesThenAll(t *testing.T) {
	st := state().SetColumnFilter(employee.ColIsActive, "Yes")
	res := Compute(fixture(), st, Options{})
	assert.Equal(t, []int{1, 3, 4}, rowIDs(res.Rows))

	res = Compute(fixture(), st.SetColumnFilter(employee.ColIsActive, "All"), Options{})
	assert.Equal(t, 5, res.Filtered())

	res = Compute(fixture(), st.SetColumnFilter(employee.ColIsActive, "No"), Options{})
	assert.Equal(t, []int{2, 5}, rowIDs(res.Rows))
}

func TestCompute_SubstringColumnFilters(t *testing.T) {
	st := state().
		SetColumnFilter(employee.ColDepartment, "COMP").
		SetColumnFilter(employee.ColPhone, "010")
	res := Compute(fixture(), st, Options{})
	assert.Equal(t, []int{1, 5}, rowIDs(res.Rows))
}

func TestCompute_GlobalSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "name_case_insensitive", query: "BOB", want: []int{2}},
		{name: "numeric_salary", query: "45000", want: []int{2, 4}},
		{name: "email_domain", query: "x.io", want: []int{1, 2, 3, 4, 5}},
		{name: "dates_not_searched", query: "2024", want: []int{}},
		{name: "booleans_not_searched", query: "true", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(fixture(), state().SetGlobalFilter(tt.query), Options{})
			assert.Equal(t, tt.want, rowIDs(res.Rows))
		})
	}
}

func TestCompute_FuzzySearch(t *testing.T) {
	res := Compute(fixture(), state().SetGlobalFilter("lvlc"), Options{Search: SearchFuzzy})
	assert.Equal(t, []int{1}, rowIDs(res.Rows))

	res = Compute(fixture(), state().SetGlobalFilter("lvlc"), Options{})
	assert.Empty(t, res.Rows)
}

func TestCompute_Sorting(t *testing.T) {
	byName := state().ToggleSort(employee.ColFirstName, false)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rowIDs(Compute(fixture(), byName, Options{}).Rows), "case-insensitive")

	bySalaryDesc := state().ToggleSort(employee.ColSalary, false)
	assert.Equal(t, []int{1, 3, 5, 2, 4}, rowIDs(Compute(fixture(), bySalaryDesc, Options{}).Rows))

	byHire := state().ToggleSort(employee.ColHireDate, false).ToggleSort(employee.ColHireDate, false)
	assert.Equal(t, []int{2, 3, 1, 5, 4}, rowIDs(Compute(fixture(), byHire, Options{}).Rows))

	multi := state().
		ToggleSort(employee.ColSalary, false).
		ToggleSort(employee.ColSalary, false).
		ToggleSort(employee.ColID, true)
	assert.Equal(t, []int{4, 2, 5, 3, 1}, rowIDs(Compute(fixture(), multi, Options{}).Rows))
}

func TestCompute_Pagination(t *testing.T) {
	rows := employee.Generate(employee.GenerateOptions{Count: 23, Seed: 1})
	st := state()

	res := Compute(rows, st, Options{})
	assert.Equal(t, 3, res.PageCount)
	assert.Len(t, res.Page, 10)
	assert.True(t, res.CanNext())

	res = Compute(rows, st.SetPageIndex(2), Options{})
	assert.Len(t, res.Page, 3)
	assert.Equal(t, 21, res.Page[0].ID)
	assert.True(t, res.CanPrev())
	assert.False(t, res.CanNext())

	res = Compute(rows, st.SetPageIndex(99), Options{})
	assert.Equal(t, 2, res.PageIndex, "index is clamped to the last page")

	res = Compute([]employee.Employee{}, st, Options{})
	assert.Equal(t, 0, res.PageCount)
	assert.Empty(t, res.Page)
}

type whereFunc func(Record) (bool, error)

func (f whereFunc) Match(r Record) (bool, error) { return f(r) }

func TestCompute_Where(t *testing.T) {
	rich := whereFunc(func(r Record) (bool, error) {
		if r.Field(employee.ColID) == 3 {
			return false, errors.New("boom")
		}
		return r.Field(employee.ColSalary).(int) > 60000, nil
	})
	res := Compute(fixture(), state(), Options{Where: rich})
	assert.Equal(t, []int{1, 5}, rowIDs(res.Rows))
	assert.Equal(t, 1, res.WhereErrors)
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Paginate(rows, Window{Offset: 2, Limit: 2}))
	assert.Equal(t, []int{4, 5}, Paginate(rows, Window{Offset: 3}))
	assert.Empty(t, Paginate(rows, Window{Offset: 10, Limit: 2}))
	assert.Equal(t, rows, Paginate(rows, Window{Offset: -1}))

	require.Error(t, Window{Offset: -1}.Validate())
	require.Error(t, Window{Limit: -1}.Validate())
	require.NoError(t, Window{Offset: 1, Limit: 1}.Validate())

	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(nil, nil))
	assert.Equal(t, -1, Compare(nil, "a"))
	assert.Equal(t, 1, Compare("a", nil))
	assert.Equal(t, -1, Compare("apple", "Banana"))
	assert.Equal(t, -1, Compare(false, true))
	assert.Equal(t, 1, Compare(day(2), day(1)))
}
