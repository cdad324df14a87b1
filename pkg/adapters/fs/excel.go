package fs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/stabilefrisur/aa-data-handler/pkg/core"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet every new workbook starts with.
const defaultSheet = "Sheet1"

// ExcelCodec handles .xlsx workbooks. Tables and series use a single sheet,
// books one sheet per flat value. Nested books are skipped here; the
// repository writes them to sibling files. The row index is not written.
type ExcelCodec struct{}

// NewExcelCodec creates a new spreadsheet codec.
func NewExcelCodec() *ExcelCodec {
	return &ExcelCodec{}
}

func (c *ExcelCodec) Encode(w io.Writer, p core.Payload) error {
	var sheets []core.Sheet
	switch v := p.(type) {
	case core.Table:
		sheets = []core.Sheet{{Name: defaultSheet, Value: v}}
	case core.Series:
		sheets = []core.Sheet{{Name: defaultSheet, Value: v.Frame()}}
	case core.Book:
		for _, s := range v.Sheets {
			switch sv := s.Value.(type) {
			case core.Table:
				sheets = append(sheets, s)
			case core.Series:
				sheets = append(sheets, core.Sheet{Name: s.Name, Value: sv.Frame()})
			}
		}
	default:
		return fmt.Errorf("%w for %s: xlsx", core.ErrUnsupportedFormat, kindOf(p))
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if s.Name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
					return fmt.Errorf("failed to name sheet %q: %w", s.Name, err)
				}
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s.Name, s.Value.(core.Table)); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", s.Name, err)
		}
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, t core.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			v = core.NormalizeCell(v)
			if x, ok := v.(float64); ok && math.IsNaN(x) {
				v = nil
			}
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return setTableRange(f, sheet, len(t.Columns), len(t.Rows)+1)
}

// tableRangeName is a sheet-scoped defined name covering the header and every
// data row. It records the table extent, which GetRows does not keep when
// trailing rows or columns are empty.
const tableRangeName = "aadata_table"

func setTableRange(f *excelize.File, sheet string, cols, rows int) error {
	if cols == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     tableRangeName,
		RefersTo: fmt.Sprintf("%s!$A$1:$%s$%d", quoted, last, rows),
		Scope:    sheet,
	})
}

// tableRanges returns the recorded table extent (columns, rows including the
// header) per sheet.
func tableRanges(f *excelize.File) map[string][2]int {
	ranges := make(map[string][2]int)
	for _, dn := range f.GetDefinedName() {
		if dn.Name != tableRangeName {
			continue
		}
		ref := dn.RefersTo
		if i := strings.LastIndex(ref, ":"); i >= 0 {
			ref = ref[i+1:]
		}
		ref = strings.ReplaceAll(ref, "$", "")
		col, row, err := excelize.CellNameToCoordinates(ref)
		if err != nil {
			continue
		}
		ranges[dn.Scope] = [2]int{col, row}
	}
	return ranges
}

// padRecords extends records to rows records of cols cells each.
func padRecords(records [][]string, cols, rows int) [][]string {
	for len(records) < rows {
		records = append(records, nil)
	}
	if len(records) > 0 {
		for len(records[0]) < cols {
			records[0] = append(records[0], "")
		}
	}
	return records
}

// promoteFloatColumns turns int64 cells into float64 in every column holding
// a float64. The workbook stores 2.0 as 2, so integral floats read back as
// integers otherwise.
func promoteFloatColumns(t core.Table) {
	for j := range t.Columns {
		hasFloat := false
		for _, row := range t.Rows {
			if _, ok := row[j].(float64); ok {
				hasFloat = true
				break
			}
		}
		if !hasFloat {
			continue
		}
		for _, row := range t.Rows {
			if i, ok := row[j].(int64); ok {
				row[j] = float64(i)
			}
		}
	}
}

// Decode returns a Table for single-sheet workbooks and a Book of Tables,
// in sheet order, otherwise. A column holding any float reads as floats
// throughout; a column of integral floats only reads as integers.
func (c *ExcelCodec) Decode(r io.Reader) (core.Payload, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid xlsx: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, errors.New("invalid xlsx: no sheets")
	}

	ranges := tableRanges(f)
	book := core.Book{}
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if r, ok := ranges[name]; ok {
			rows = padRecords(rows, r[0], r[1])
		}
		t, err := tableFromRecords(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		promoteFloatColumns(t)
		book.Sheets = append(book.Sheets, core.Sheet{Name: name, Value: t})
	}

	if len(book.Sheets) == 1 {
		return book.Sheets[0].Value, nil
	}
	return book, nil
}
