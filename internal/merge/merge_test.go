package merge

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDir_ConcatenatesVertically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "Address,County\nfoo,Dublin\n")
	writeFile(t, dir, "b.csv", "Address,County\nbar,Dublin\n")

	out := filepath.Join(t.TempDir(), "merged.csv")
	res, err := Dir(dir, out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 2, res.Rows)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Address,County", lines[0])
}

func TestDir_DecodesLatin1(t *testing.T) {
	dir := t.TempDir()
	// "Baile Átha Cliath" with Á as Latin-1 byte 0xC1.
	writeFile(t, dir, "latin.csv", "Address,County\nBaile \xC1tha Cliath,Dublin\n")

	out := filepath.Join(t.TempDir(), "merged.csv")
	_, err := Dir(dir, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Baile Átha Cliath")
}

func TestDir_AlignsColumnsByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "Address,County\nfoo,Dublin\n")
	writeFile(t, dir, "b.csv", "County,Address\nDublin,bar\n")

	out := filepath.Join(t.TempDir(), "merged.csv")
	res, err := Dir(dir, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"foo", "Dublin"}, rows[1])
	assert.Equal(t, []string{"bar", "Dublin"}, rows[2])
}

func TestDir_SkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", "Address,County\nfoo,Dublin\n")
	writeFile(t, dir, "bad.xlsx", "this is not a zip archive")

	out := filepath.Join(t.TempDir(), "merged.csv")
	res, err := Dir(dir, out)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Rows)
}

func TestDir_ReadsXLSX(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "Address,County\nfoo,Dublin\n")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	header := sheet.AddRow()
	header.AddCell().SetString("Address")
	header.AddCell().SetString("County")
	row := sheet.AddRow()
	row.AddCell().SetString("xlsx-house")
	row.AddCell().SetString("Dublin")
	require.NoError(t, f.Save(filepath.Join(dir, "b.xlsx")))

	out := filepath.Join(t.TempDir(), "merged.csv")
	res, err := Dir(dir, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 2, res.Rows)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "xlsx-house")
}

func TestDir_NoFilesIsError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.csv")
	_, err := Dir(t.TempDir(), out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CSV or XLSX files")
}
