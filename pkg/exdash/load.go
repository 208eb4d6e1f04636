package exdash

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/models"
	"github.com/ukaji3/exdash-go/pkg/exdash/parser"
)

// Load reads every sheet of the workbook at path into a Dataset.
func Load(path string, opts Options) (*models.Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, NewLoadError(path, "", ErrFileNotFound)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(path, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	return readWorkbook(f, filepath.Base(path), opts)
}

// LoadReader reads a workbook from r, e.g. an uploaded file. name labels
// the workbook in errors and output.
func LoadReader(r io.Reader, name string, opts Options) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewLoadError(name, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	return readWorkbook(f, name, opts)
}

func readWorkbook(f *excelize.File, bookName string, opts Options) (*models.Workbook, error) {
	logger := opts.logger().With(zap.String("book", bookName))

	var printAreas map[string][]models.Range
	if opts.ShouldUsePrintArea() {
		printAreas = parser.PrintAreas(f)
	}

	wb := &models.Workbook{
		BookName: bookName,
		Sheets:   make(map[string]*models.Dataset),
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := parser.ReadRows(f, sheetName)
		if err != nil {
			return nil, NewLoadError(bookName, sheetName, err)
		}

		bounds := sheetBounds(parser.TextRows(rows), printAreas[sheetName], opts)
		ds, err := parser.BuildDataset(rows, bounds)
		if err != nil {
			return nil, NewLoadError(bookName, sheetName, err)
		}

		fields := []zap.Field{
			zap.String("sheet", sheetName),
			zap.Int("rows", ds.Len()),
			zap.Int("columns", ds.Width()),
		}
		if bounds != nil {
			fields = append(fields, zap.String("range", parser.RangeRef(*bounds)))
		}
		logger.Debug("sheet loaded", fields...)

		wb.SheetNames = append(wb.SheetNames, sheetName)
		wb.Sheets[sheetName] = ds
	}

	return wb, nil
}

// sheetBounds picks the cell range a sheet's dataset is read from.
// A print area wins when enabled; otherwise the detected data region, if any.
func sheetBounds(rows [][]string, areas []models.Range, opts Options) *models.Range {
	if opts.ShouldUsePrintArea() && len(areas) > 0 {
		area := areas[0]
		return &area
	}
	if opts.ShouldDetectRegion() {
		return parser.DetectRegion(rows, parser.DefaultTableParams())
	}
	return nil
}
