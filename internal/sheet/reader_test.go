package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheetName string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		_, err := f.NewSheet(sheetName)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRowsSkipsHeader(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Name", "SKU", "Price"},
		{"Piston", "P-1", 12.5},
		{"Gasket", "G-1", 3},
	})

	rows, err := ReadRows(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, "Piston", rows[0].Cell(0))
	assert.Equal(t, "P-1", rows[0].Cell(1))
	assert.Equal(t, "12.5", rows[0].Cell(2))
	assert.Equal(t, 3, rows[1].Number)
	assert.Equal(t, "", rows[1].Cell(14))
}

func TestReadRowsNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Products", [][]any{
		{"Name"},
		{"Piston"},
	})

	rows, err := ReadRows(path, "Products")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Piston", rows[0].Cell(0))

	_, err = ReadRows(path, "Missing")
	assert.Error(t, err)
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}
