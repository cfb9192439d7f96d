package batch

import "codeberg.org/snonux/lingosheet/internal/sheet"

// Status tags the outcome of one row
type Status int

const (
	// StatusEmpty marks a row whose first cell is missing or not text
	StatusEmpty Status = iota
	// StatusTranslated marks a row translated successfully
	StatusTranslated
	// StatusFailed marks a row whose translation failed; Reason says why
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusTranslated:
		return "translated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RowResult is the outcome of one input row
type RowResult struct {
	Index       int    // zero-based input row index
	Original    string // full first-cell text
	Sent        string // text sent for translation after truncation
	Translation string
	Status      Status
	Reason      string // failure reason when Status is StatusFailed
}

// Pair converts the result into an output row
func (r RowResult) Pair() sheet.Pair {
	switch r.Status {
	case StatusTranslated:
		return sheet.Pair{Original: r.Original, Translation: r.Translation}
	case StatusFailed:
		return sheet.Pair{Original: r.Original, Failed: true}
	default:
		return sheet.Pair{}
	}
}

// Report summarizes a batch run
type Report struct {
	Results   []RowResult
	InputRows int // rows in the input before MaxRows was applied
	Dropped   int // rows beyond MaxRows that were not processed
}

// Pairs returns one output pair per processed row, in input order
func (r *Report) Pairs() []sheet.Pair {
	pairs := make([]sheet.Pair, len(r.Results))
	for i, result := range r.Results {
		pairs[i] = result.Pair()
	}
	return pairs
}

// Processed returns the number of rows that were kept
func (r *Report) Processed() int {
	return len(r.Results)
}

// Count returns the number of results with the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Truncated reports whether rows were dropped because of MaxRows
func (r *Report) Truncated() bool {
	return r.Dropped > 0
}
