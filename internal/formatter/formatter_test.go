package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/spreadsheet"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/format"
	"github.com/oakwood-commons/dirtab/internal/grid"
)

func testView(t *testing.T) View {
	t.Helper()
	st := grid.New(employee.Columns(), grid.DefaultOptions())
	st = st.SetOrder([]string{employee.ColSalary, employee.ColFirstName, employee.ColIsActive, employee.ColHireDate})
	for _, id := range []string{employee.ColID, employee.ColLastName, employee.ColEmail, employee.ColPhone, employee.ColDepartment} {
		st = st.SetVisible(id, false)
	}
	rows := []employee.Employee{
		{ID: 1, FirstName: "Ada|Lee", Salary: 85000, IsActive: true, HireDate: time.Date(2023, 3, 9, 0, 0, 0, 0, time.UTC)},
		{ID: 2, FirstName: "Grace", Salary: 120500, HireDate: time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)},
	}
	return View{
		Columns:   st.VisibleColumns(),
		Rows:      Records(rows),
		Formatter: format.Default(),
		Footer:    []string{"Showing 2 of 2 rows"},
	}
}

func render(t *testing.T, v View, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, v, f))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"": FormatTable, "TABLE": FormatTable, "yml": FormatYAML, "md": FormatMarkdown,
		"xlsx": FormatXLSX, " json ": FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.True(t, FormatXLSX.Binary())
	assert.False(t, FormatCSV.Binary())
}

func TestWrite_Unknown(t *testing.T) {
	assert.ErrorIs(t, Write(&bytes.Buffer{}, View{}, "pdf"), ErrUnknownFormat)
}

func TestWriteJSON_KeepsColumnOrder(t *testing.T) {
	out := render(t, testView(t), FormatJSON)
	assert.Less(t, strings.Index(out, `"salary"`), strings.Index(out, `"firstName"`))
	assert.Less(t, strings.Index(out, `"isActive"`), strings.Index(out, `"hireDate"`))
	assert.Contains(t, out, `"salary": 85000`)
	assert.Contains(t, out, `"hireDate": "2023-03-09T00:00:00Z"`)
	assert.NotContains(t, out, `"email"`)
}

func TestWriteYAML(t *testing.T) {
	out := render(t, testView(t), FormatYAML)
	assert.Less(t, strings.Index(out, "salary:"), strings.Index(out, "firstName:"))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Grace", got[1]["firstName"])
	assert.Equal(t, 120500, got[1]["salary"])
	assert.Equal(t, false, got[1]["isActive"])
}

func TestWriteTOML(t *testing.T) {
	out := render(t, testView(t), FormatTOML)
	var doc struct {
		Rows []map[string]any `toml:"rows"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, "Ada|Lee", doc.Rows[0]["firstName"])
	assert.EqualValues(t, 85000, doc.Rows[0]["salary"])
}

func TestWriteCSV_FormattedCells(t *testing.T) {
	out := render(t, testView(t), FormatCSV)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Salary,First Name,Active,Hire Date", lines[0])
	assert.Equal(t, `"$85,000",Ada|Lee,Yes,"Mar 9, 2023"`, lines[1])
}

func TestWriteMarkdown(t *testing.T) {
	out := render(t, testView(t), FormatMarkdown)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "| Salary | First Name | Active | Hire Date |", lines[0])
	assert.Equal(t, "| ---: | --- | --- | --- |", lines[1])
	assert.Equal(t, `| $85,000 | Ada\|Lee | Yes | Mar 9, 2023 |`, lines[2])
	assert.Contains(t, out, "Showing 2 of 2 rows")
}

func TestWriteHTML(t *testing.T) {
	out := render(t, testView(t), FormatHTML)
	assert.Contains(t, out, "<title>Employee directory</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>First Name</th>")
	assert.Contains(t, out, "Grace")
	assert.Contains(t, out, "Showing 2 of 2 rows")
}

func markupView(t *testing.T) View {
	t.Helper()
	v := testView(t)
	v.Rows = Records([]employee.Employee{
		{ID: 3, FirstName: "<script>alert(1)</script>", Salary: 50000, HireDate: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 4, FirstName: "*Tools*", Salary: 60000, HireDate: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
	})
	v.Footer = []string{`Global search: "<b>_x_</b>"`}
	return v
}

func TestWriteMarkdown_EscapesMarkup(t *testing.T) {
	out := render(t, markupView(t), FormatMarkdown)
	assert.Contains(t, out, `| \<script\>alert(1)\</script\> |`)
	assert.Contains(t, out, `| \*Tools\* |`)
	assert.Contains(t, out, `Global search: "\<b\>\_x\_\</b\>"`)
}

func TestWriteHTML_EscapesCells(t *testing.T) {
	out := render(t, markupView(t), FormatHTML)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "*Tools*")
	assert.NotContains(t, out, "<em>")
	assert.NotContains(t, out, "<b>")
}

func TestWriteXLSX(t *testing.T) {
	out := render(t, testView(t), FormatXLSX)
	wb, err := spreadsheet.Read(strings.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, wb.Sheets(), 1)

	sheet := wb.Sheets()[0]
	assert.Equal(t, "Employee directory", sheet.Name())
	rows := sheet.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Salary", rows[0].Cells()[0].GetString())
	assert.Equal(t, "First Name", rows[0].Cells()[1].GetString())
	assert.Equal(t, "Grace", rows[2].Cells()[1].GetString())
}

func TestWriteTable(t *testing.T) {
	v := testView(t)
	out := render(t, v, FormatTable)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Salary"))
	assert.Contains(t, lines[2], "$85,000")
	assert.Equal(t, "Showing 2 of 2 rows", lines[4])
}
