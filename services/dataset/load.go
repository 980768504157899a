package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Raw is a source table before preparation. Header names are already trimmed
// and lowercased.
type Raw struct {
	Header []string
	Rows   [][]string
}

func (r *Raw) columnIndex() map[string]int {
	idx := make(map[string]int, len(r.Header))
	for i, name := range r.Header {
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// Load reads a .csv or .xlsx source. sheet only applies to workbooks; empty
// selects the first sheet.
func Load(path, sheet string) (*Raw, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path, sheet)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open dataset %s", path)
		}
		defer f.Close()
		return ReadCSV(f)
	}
}

// ReadCSV parses a CSV stream whose first record is the header.
func ReadCSV(r io.Reader) (*Raw, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return fromRecords(records)
}

func loadXLSX(path, sheet string) (*Raw, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", path)
	}
	defer x.Close()

	if sheet == "" {
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheet)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Raw, error) {
	if len(records) == 0 {
		return nil, errors.New("dataset is empty")
	}
	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimPrefix(name, "\ufeff")
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return &Raw{Header: header, Rows: records[1:]}, nil
}
