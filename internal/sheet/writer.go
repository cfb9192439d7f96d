package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// FailedText is written in place of a translation that could not be produced
const FailedText = "Translation error"

// OutputSheet is the name of the single sheet in written workbooks
const OutputSheet = "Translated"

// Pair is one output row: the original text and its translation
type Pair struct {
	Original    string
	Translation string
	Failed      bool
}

// Cells returns the two rendered output cells for the pair
func (p Pair) Cells() [2]string {
	if p.Failed {
		return [2]string{p.Original, FailedText}
	}
	return [2]string{p.Original, p.Translation}
}

// Write serializes pairs into a new xlsx workbook with one two-column
// sheet and one row per pair, without a header row.
func Write(pairs []Pair) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, OutputSheet); err != nil {
		return nil, fmt.Errorf("failed to name output sheet: %w", err)
	}

	for i, pair := range pairs {
		cells := pair.Cells()
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		row := []interface{}{cells[0], cells[1]}
		if err := f.SetSheetRow(OutputSheet, cellName, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
