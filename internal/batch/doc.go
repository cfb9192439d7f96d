// Package batch runs spreadsheet rows through a translator. It enforces
// the row and cell-length limits, runs rows on a bounded worker pool, and
// records a tagged result per row so one failing row never aborts the
// rest of the batch.
package batch
