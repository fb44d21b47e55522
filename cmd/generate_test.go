package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dirtab/pkg/loader"
)

func TestGenerate_Stdout(t *testing.T) {
	out := mustRunCLI(t, "generate", "--rows", "3", "--seed", "1", "--format", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id,firstName,lastName"), lines[0])

	out = mustRunCLI(t, "generate", "--rows", "2", "--seed", "1")
	assert.Equal(t, []int{1, 2}, decodeIDs(t, out))
}

func TestGenerate_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.yaml")
	out := mustRunCLI(t, "generate", "--rows", "4", "--seed", "5", "--out", path)
	assert.Empty(t, out)

	rows, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	out = mustRunCLI(t, "--data", path, "-o", "json", "--all")
	assert.Equal(t, []int{1, 2, 3, 4}, decodeIDs(t, out))
}

func TestGenerate_Database(t *testing.T) {
	db := filepath.Join(t.TempDir(), "staff.db")

	mustRunCLI(t, "generate", "--rows", "6", "--seed", "2", "--db", db)
	out := mustRunCLI(t, "--db", db, "-o", "json", "--all")
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, decodeIDs(t, out))

	mustRunCLI(t, "generate", "--rows", "2", "--seed", "2", "--db", db, "--replace")
	out = mustRunCLI(t, "--db", db, "-o", "json", "--all")
	assert.Equal(t, []int{1, 2}, decodeIDs(t, out))
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := runCLI(t, "generate", "--format", "xml")
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)

	_, err = runCLI(t, "generate", "--out", filepath.Join(t.TempDir(), "x.xml"))
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}
