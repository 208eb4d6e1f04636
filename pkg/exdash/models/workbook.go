package models

// Workbook is the loader's view of a spreadsheet: one Dataset per sheet.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists sheets in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its dataset.
	Sheets map[string]*Dataset `json:"-"`
}

// Sheet returns the dataset for the named sheet.
func (w *Workbook) Sheet(name string) (*Dataset, bool) {
	if w == nil {
		return nil, false
	}
	ds, ok := w.Sheets[name]
	return ds, ok
}
