package sheet

import "errors"

// ErrInvalidFormat indicates the input is not a decodable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates the workbook decoded but contains no worksheets.
var ErrNoSheets = errors.New("no sheets found")
