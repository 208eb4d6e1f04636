package exdash

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/exdash-go/pkg/exdash/engine"
	"github.com/ukaji3/exdash-go/pkg/exdash/models"
)

// Session holds one user's workbook and the working copy of the selected sheet.
// Each session owns its data; a Session is not safe for concurrent use.
type Session struct {
	ID       uuid.UUID
	Workbook *models.Workbook

	sheet  string
	data   *models.Dataset
	logger *zap.Logger
}

// Open loads the workbook at path and selects its first sheet.
func Open(path string, opts Options) (*Session, error) {
	wb, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	return NewSession(wb, opts.Logger)
}

// OpenReader loads a workbook from r and selects its first sheet.
func OpenReader(r io.Reader, name string, opts Options) (*Session, error) {
	wb, err := LoadReader(r, name, opts)
	if err != nil {
		return nil, err
	}
	return NewSession(wb, opts.Logger)
}

// NewSession starts a session over an already loaded workbook.
func NewSession(wb *models.Workbook, logger *zap.Logger) (*Session, error) {
	if wb == nil || len(wb.SheetNames) == 0 {
		return nil, NewLoadError(bookName(wb), "", fmt.Errorf("%w: workbook has no sheets", ErrInvalidFormat))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	s := &Session{
		ID:       id,
		Workbook: wb,
		logger:   logger.With(zap.String("session", id.String()), zap.String("book", wb.BookName)),
	}
	if err := s.SelectSheet(wb.SheetNames[0]); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectSheet makes name the working sheet, discarding edits to the previous one.
func (s *Session) SelectSheet(name string) error {
	ds, ok := s.Workbook.Sheet(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	s.sheet = name
	s.data = ds.Clone()
	s.logger.Debug("sheet selected", zap.String("sheet", name), zap.Int("rows", ds.Len()))
	return nil
}

// Sheet returns the working sheet name.
func (s *Session) Sheet() string {
	return s.sheet
}

// Data returns the working dataset.
func (s *Session) Data() *models.Dataset {
	return s.data
}

// ReplaceEmpty fills empty cells of the working dataset with marker.
func (s *Session) ReplaceEmpty(marker string) error {
	ds, err := engine.ReplaceEmpty(s.data, marker)
	if err != nil {
		return err
	}
	s.data = ds
	s.logger.Debug("empty values replaced", zap.String("marker", marker))
	return nil
}

// AddSerialNumbers prepends a 1-based row number column named name.
func (s *Session) AddSerialNumbers(name string) error {
	ds, err := engine.AddSerialNumbers(s.data, name)
	if err != nil {
		return err
	}
	s.data = ds
	s.logger.Debug("serial numbers added", zap.String("column", name))
	return nil
}

// Aggregate runs an aggregation over the working dataset. The working
// dataset itself is left as is.
func (s *Session) Aggregate(req engine.AggregationRequest) (*models.Dataset, error) {
	out, err := engine.Aggregate(s.data, req, engine.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("aggregation failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Chart builds a chart descriptor from the working dataset.
func (s *Session) Chart(req engine.ChartRequest) (*models.ChartDescriptor, error) {
	desc, err := engine.BuildChart(s.data, req, engine.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("chart build failed", zap.String("family", string(req.Family)), zap.Error(err))
		return nil, err
	}
	return desc, nil
}

// Calculate reduces one column of the working dataset.
func (s *Session) Calculate(req engine.ScalarRequest) (*engine.ScalarResult, error) {
	res, err := engine.Calculate(s.data, req, engine.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("calculation failed", zap.Error(err))
		return nil, err
	}
	return res, nil
}

func bookName(wb *models.Workbook) string {
	if wb == nil {
		return ""
	}
	return wb.BookName
}
