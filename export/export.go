package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"labcollect/models"
)

// ErrExport wraps serialization failures (empty row set, xlsx write
// errors). An export failure never touches stored data.
var ErrExport = errors.New("export error")

// ErrNoRows marks a table with nothing to write. It wraps ErrExport so
// callers can still match the broad class, but distinguishes the
// caller-fixable case (submit some rows) from a write failure.
var ErrNoRows = fmt.Errorf("%w: no rows to export", ErrExport)

// MIME type for the xlsx container
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a flat header-plus-rows view of tabular data. Each row is
// aligned to the header; short rows read as empty cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the value at the given row for the named column, or ""
// when the column is absent or the row is short.
func (t Table) Cell(row int, column string) string {
	for i, h := range t.Header {
		if h == column {
			if i < len(t.Rows[row]) {
				return t.Rows[row][i]
			}
			return ""
		}
	}
	return ""
}

// Flatten turns submitted records into a table with one row per record.
// Columns follow the given ordering (the static field schema); keys not
// in it are appended after the schema columns, sorted at first sight so
// the output is deterministic. Records missing a column pad with empty
// cells - heterogeneous rows never fail.
func Flatten(records []models.Record, columns []string) Table {
	header := append([]string{}, columns...)
	known := make(map[string]bool, len(header))
	for _, c := range header {
		known[c] = true
	}

	for _, rec := range records {
		var extras []string
		for k := range rec {
			if !known[k] {
				extras = append(extras, k)
				known[k] = true
			}
		}
		sort.Strings(extras)
		header = append(header, extras...)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(header))
		for j, col := range header {
			row[j] = rec[col]
		}
		rows[i] = row
	}

	return Table{Header: header, Rows: rows}
}

// WriteXLSX serializes the table to a single-sheet xlsx byte stream.
// The sheet name is sanitized first; an empty table is an ErrNoRows.
func WriteXLSX(t Table, sheetName string) ([]byte, error) {
	if len(t.Rows) == 0 {
		return nil, ErrNoRows
	}

	sheet := SanitizeSheetName(sheetName)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %v", ErrExport, err)
	}

	if err := writeRow(f, sheet, 1, t.Header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("%w: cell name: %v", ErrExport, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%w: write row %d: %v", ErrExport, rowNum, err)
	}
	return nil
}

// SanitizeSheetName makes a string safe as an xlsx sheet name: the
// characters []:*?/\ are stripped and the result is capped at the
// 31-character sheet name limit. Blank names fall back to "Experiment".
func SanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "Experiment"
	}
	if runes := []rune(cleaned); len(runes) > 31 {
		cleaned = string(runes[:31])
	}
	return cleaned
}

// Filename derives the suggested download name from the experiment
// name, spaces replaced with underscores.
func Filename(experimentName string) string {
	name := strings.TrimSpace(experimentName)
	if name == "" {
		name = "experiment"
	}
	return strings.ReplaceAll(name, " ", "_") + "_data.xlsx"
}
