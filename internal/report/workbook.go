package report

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/trials"
)

// ErrEmptyTable is returned when there is nothing to put in a workbook.
var ErrEmptyTable = errors.New("the table has no rows")

// Sheet is the report of one request as it goes into the workbook.
type Sheet struct {
	Name      string
	RequestID string
	Rows      []Row
}

// Sheets builds one padded report per request, in natural request order.
func Sheets(rows []domain.FlatRow) []Sheet {
	namer := NewSheetNamer()
	ids := trials.Requests(rows)
	sheets := make([]Sheet, 0, len(ids))
	for _, id := range ids {
		meta, _ := trials.Metadata(rows, id)
		sheets = append(sheets, Sheet{
			Name:      namer.Name(id),
			RequestID: id,
			Rows:      Pad(BuildRows(meta, trials.Group(rows, id))),
		})
	}
	return sheets
}

// BuildWorkbook renders every request of the table as one sheet of an XLSX
// workbook and returns the serialized file.
func BuildWorkbook(rows []domain.FlatRow) ([]byte, error) {
	sheets := Sheets(rows)
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet) error {
	for i, r := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := []string(r)
		if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
			return fmt.Errorf("write sheet %q row %d: %w", s.Name, i+1, err)
		}
	}
	if err := f.SetColWidth(s.Name, "A", "A", 28); err != nil {
		return fmt.Errorf("size sheet %q: %w", s.Name, err)
	}
	return nil
}
