package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dirtab/internal/employee"
)

func sampleRows() []employee.Employee {
	return []employee.Employee{
		{
			ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Phone: "555-0100", Department: "Engineering", Salary: 120000,
			HireDate: time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC), IsActive: true,
		},
		{
			ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
			Phone: "555-0101", Department: "Finance", Salary: 95000,
			HireDate: time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC), IsActive: false,
		},
	}
}

func assertSameRows(t *testing.T, want, got []employee.Employee) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.True(t, w.HireDate.Equal(g.HireDate), "row %d hireDate: %v != %v", i, w.HireDate, g.HireDate)
		w.HireDate, g.HireDate = time.Time{}, time.Time{}
		assert.Equal(t, w, g, "row %d", i)
	}
}

func TestWriteThenLoad_AllFormats(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatNDJSON, FormatYAML, FormatTOML, FormatCSV} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleRows(), f))

			got, err := Load(buf.Bytes(), f)
			require.NoError(t, err)
			assertSameRows(t, sampleRows(), got)

			sniffed, err := Load(buf.Bytes(), FormatAuto)
			require.NoError(t, err, "auto-detect %s", f)
			assertSameRows(t, sampleRows(), sniffed)
		})
	}
}

func TestLoadFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"people.json", "people.yml", "people.toml", "people.csv", "people.jsonl"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, sampleRows()))
		got, err := LoadFile(path)
		require.NoError(t, err, name)
		assertSameRows(t, sampleRows(), got)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "people.xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[{"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load([]byte("  \n"), FormatJSON)
	assert.Error(t, err)
}

func TestLoadCSV_Validation(t *testing.T) {
	_, err := Load([]byte("id,firstName\n1,Ada\n"), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")

	header := "id,firstName,lastName,email,phone,department,salary,hireDate,isActive\n"
	_, err = Load([]byte(header+"x,Ada,L,a@b.c,1,Eng,1,2021-01-01,true\n"), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: id")

	rows, err := Load([]byte(header+"7,Ada,L,a@b.c,1,Eng,100,2021-01-01,false\n"), FormatCSV)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].ID)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), rows[0].HireDate)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("jsonl")
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, f)

	_, err = ParseFormat("parquet")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
