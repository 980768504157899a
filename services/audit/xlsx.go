package audit

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps the audit sheet in a local workbook, for offline runs.
type XLSXStore struct {
	path      string
	worksheet string
	mu        sync.Mutex
}

func NewXLSXStore(path, worksheet string) *XLSXStore {
	return &XLSXStore{path: path, worksheet: worksheet}
}

func (s *XLSXStore) EnsureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, err := s.open()
	if err != nil {
		return remoteErr("open workbook", err)
	}
	defer x.Close()

	rows, err := x.GetRows(s.worksheet)
	if err != nil {
		return remoteErr("read header", err)
	}
	if len(rows) > 0 && HeaderMatches(rows[0]) {
		return nil
	}

	header := headerValues()
	if err := x.SetSheetRow(s.worksheet, "A1", &header); err != nil {
		return remoteErr("write header", err)
	}
	return remoteErr("save workbook", x.SaveAs(s.path))
}

func (s *XLSXStore) Append(ctx context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, err := s.open()
	if err != nil {
		return remoteErr("open workbook", err)
	}
	defer x.Close()

	rows, err := x.GetRows(s.worksheet)
	if err != nil {
		return remoteErr("read rows", err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return remoteErr("append", err)
	}

	values := row.Values()
	if err := x.SetSheetRow(s.worksheet, cell, &values); err != nil {
		return remoteErr("append", err)
	}
	return remoteErr("save workbook", x.SaveAs(s.path))
}

// open loads the workbook, creating it with the audit worksheet when absent.
func (s *XLSXStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		x := excelize.NewFile()
		if err := x.SetSheetName(x.GetSheetName(0), s.worksheet); err != nil {
			x.Close()
			return nil, errors.Wrap(err, "name audit worksheet")
		}
		return x, nil
	}

	x, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.path)
	}
	if idx, _ := x.GetSheetIndex(s.worksheet); idx < 0 {
		if _, err := x.NewSheet(s.worksheet); err != nil {
			x.Close()
			return nil, errors.Wrapf(err, "create worksheet %s", s.worksheet)
		}
	}
	return x, nil
}
