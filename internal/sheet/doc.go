// Package sheet reads uploaded spreadsheets into row-major cell grids and
// writes translation pairs back out as a two-column workbook. It is a thin
// adapter over excelize.
package sheet
