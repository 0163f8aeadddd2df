package sheet

import (
	"fmt"

	"catalog/loader/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ReadRows returns the data rows of a workbook sheet, without the header row.
// An empty sheet name selects the first sheet.
func ReadRows(path, sheetName string) ([]domain.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheetName = sheets[0]
	}

	cells, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(cells) == 0 {
		return []domain.Row{}, nil
	}

	rows := make([]domain.Row, 0, len(cells)-1)
	for i, values := range cells[1:] {
		rows = append(rows, domain.Row{
			Number: i + 2,
			Cells:  values,
		})
	}

	log.Infof("📄 Read %d rows from %s (sheet %q)", len(rows), path, sheetName)
	return rows, nil
}
