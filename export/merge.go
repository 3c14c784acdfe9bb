package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Download name for the merge pipeline
const MergedFilename = "combined_lab_data.xlsx"

// Header of the synthetic index column prepended by Concat
const RowIndexColumn = "Row Index"

// ParseUpload reads one uploaded spreadsheet or delimited-text file
// into a table. The format is chosen by file extension; anything else
// is an error the caller reports per-file without aborting the batch.
func ParseUpload(fileName string, r io.Reader) (Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return parseXLSX(r)
	case ".csv", ".txt":
		return parseDelimited(r, ',')
	case ".tsv":
		return parseDelimited(r, '\t')
	default:
		return Table{}, fmt.Errorf("unsupported file type %q", filepath.Ext(fileName))
	}
}

func parseXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("reading workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(rows), nil
}

func parseDelimited(r io.Reader, comma rune) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // ragged files are padded, not rejected

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("reading delimited file: %w", err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{}
	}
	return Table{Header: rows[0], Rows: rows[1:]}
}

// Concat merges tables row-wise into one table with a zero-based
// "Row Index" column prepended. Columns are the union of all input
// headers in first-seen order; rows missing a column get empty cells,
// matching standard tabular concatenation. When an input already has
// a "Row Index" column the synthetic one is renumbered ("Row Index 2",
// ...) so the uploaded data survives.
func Concat(tables []Table) Table {
	seen := map[string]bool{}
	for _, t := range tables {
		for _, col := range t.Header {
			seen[col] = true
		}
	}

	indexColumn := RowIndexColumn
	for n := 2; seen[indexColumn]; n++ {
		indexColumn = fmt.Sprintf("%s %d", RowIndexColumn, n)
	}

	header := []string{indexColumn}
	seen = map[string]bool{indexColumn: true}
	for _, t := range tables {
		for _, col := range t.Header {
			if !seen[col] {
				header = append(header, col)
				seen[col] = true
			}
		}
	}

	var rows [][]string
	index := 0
	for _, t := range tables {
		for i := range t.Rows {
			row := make([]string, len(header))
			row[0] = strconv.Itoa(index)
			for j, col := range header[1:] {
				row[j+1] = t.Cell(i, col)
			}
			rows = append(rows, row)
			index++
		}
	}

	return Table{Header: header, Rows: rows}
}
