package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// CellKind classifies the value stored in a cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
	CellDate
	CellError
)

// Cell is a single spreadsheet value together with its kind
type Cell struct {
	Value string
	Kind  CellKind
}

// IsText reports whether the cell holds a non-empty string
func (c Cell) IsText() bool {
	return c.Kind == CellText && c.Value != ""
}

// Row is an ordered sequence of cells from one spreadsheet row
type Row []Cell

// First returns the first cell of the row and whether it exists
func (r Row) First() (Cell, bool) {
	if len(r) == 0 {
		return Cell{}, false
	}
	return r[0], true
}

// TextRow builds a row holding a single text cell
func TextRow(value string) Row {
	if value == "" {
		return Row{}
	}
	return Row{{Value: value, Kind: CellText}}
}

// Read decodes the first sheet of an xlsx workbook into a row-major grid.
// Every row is treated as data; no header row is inferred.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheetName := sheets[0]

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	rows := make([]Row, 0, len(raw))
	for rowIdx, values := range raw {
		row := make(Row, 0, len(values))
		for colIdx, value := range values {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, fmt.Errorf("invalid cell coordinates (%d, %d): %w", colIdx+1, rowIdx+1, err)
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s: %w", cellName, err)
			}
			row = append(row, Cell{Value: value, Kind: kindOf(cellType, value)})
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// kindOf maps an excelize cell type onto a CellKind.
// Cells without an explicit type attribute hold numbers.
func kindOf(t excelize.CellType, value string) CellKind {
	if value == "" {
		return CellEmpty
	}
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return CellText
	case excelize.CellTypeBool:
		return CellBool
	case excelize.CellTypeDate:
		return CellDate
	case excelize.CellTypeError:
		return CellError
	default:
		return CellNumber
	}
}
