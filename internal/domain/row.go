package domain

// Row is one raw spreadsheet row. Number is the 1-based sheet row.
type Row struct {
	Number int      `json:"number"`
	Cells  []string `json:"cells"`
}

// Cell returns the cell at index, or "" when the row is shorter.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r.Cells) {
		return ""
	}
	return r.Cells[index]
}
