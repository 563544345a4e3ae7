package dom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const nestedReport = `<html><body>
<table id="outer">
  <tr><td>Outer <b>bold</b></td></tr>
  <tr><td>
    <table id="inner"><tr><td>Inner</td></tr></table>
  </td></tr>
</table>
<table><tr><th>Time</th><th> Profit </th></tr><tr><td>a</td><td> 1 </td></tr></table>
</body></html>`

func TestFindAllIncludesNestedTables(t *testing.T) {
	root, err := ParseString(nestedReport)
	require.NoError(t, err)

	tables := Tables(root)
	require.Len(t, tables, 3)

	// rows of the nested table also belong to the outer one
	assert.Len(t, Rows(tables[0]), 3)
	assert.Len(t, Rows(tables[1]), 1)
	assert.Len(t, Rows(tables[2]), 2)
}

func TestFindAllExcludesSelf(t *testing.T) {
	root, err := ParseString(nestedReport)
	require.NoError(t, err)

	outer := Tables(root)[0]
	assert.Len(t, FindAll(outer, "table"), 1)
}

func TestCellsFallsBackToHeaderCells(t *testing.T) {
	root, err := ParseString(nestedReport)
	require.NoError(t, err)

	rows := Rows(Tables(root)[2])
	assert.Equal(t, []string{"Time", "Profit"}, CellTexts(rows[0]))
	assert.Equal(t, []string{"a", "1"}, CellTexts(rows[1]))
}

func TestTextConcatenatesDescendants(t *testing.T) {
	root, err := ParseString(nestedReport)
	require.NoError(t, err)

	first := Rows(Tables(root)[0])[0]
	assert.Equal(t, "tr", first.Tag())
	assert.Contains(t, first.Text(), "Outer bold")
}

func TestContainsAll(t *testing.T) {
	assert.True(t, ContainsAll("Time Symbol Profit", "Time", "Profit"))
	assert.False(t, ContainsAll("Time Symbol", "Time", "Profit"))
	assert.True(t, ContainsAll("anything"))
}

func TestCheckExtension(t *testing.T) {
	for _, name := range []string{"report.htm", "report.html", "REPORT.HTM", "a/b/Report.Html"} {
		assert.NoError(t, CheckExtension(name), name)
	}
	for _, name := range []string{"report.pdf", "report", "report.htm.txt"} {
		err := CheckExtension(name)
		assert.True(t, errors.Is(err, ErrUnsupportedExtension), name)
	}
}

func TestDecodeUTF16WithBOM(t *testing.T) {
	const html = `<html><body><table><tr><td>Deals</td></tr></table></body></html>`
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(html))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFE}, encoded[:2])

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, html, string(decoded))
}

func TestDecodeUTF8Passthrough(t *testing.T) {
	const html = `<html><head><meta charset="utf-8"></head><body>Profit</body></html>`
	decoded, err := Decode([]byte(html))
	require.NoError(t, err)
	assert.Equal(t, html, string(decoded))
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "Report.htm")
	require.NoError(t, os.WriteFile(path, []byte(nestedReport), 0644))
	root, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, Tables(root), 3)

	_, err = LoadFile(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "report.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}
