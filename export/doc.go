/*
Package export flattens experiment records into tables and serializes
them as xlsx spreadsheets.

# Single-Experiment Export

	table := export.Flatten(exp.Rows, fields.Columns())
	data, err := export.WriteXLSX(table, exp.Name)

Flatten produces one row per record. Column ordering comes from the
static field schema; keys outside the schema are appended after it and
rows missing a key pad with empty cells, so heterogeneous records
produce a complete rectangular table rather than ragged output.

WriteXLSX writes a single sheet named after the (sanitized) experiment
name. Sheet names have the xlsx rules applied: []:*?/\ stripped, 31
character cap, blank falls back to "Experiment". An empty row set is an
ErrNoRows - there is nothing to serialize.

The suggested download name comes from Filename:

	export.Filename("Whey gelation")  // "Whey_gelation_data.xlsx"

# Multi-File Merge

The merge pipeline concatenates independently uploaded tables:

	t1, err := export.ParseUpload("a.xlsx", file1)
	t2, err := export.ParseUpload("b.csv", file2)
	combined := export.Concat([]export.Table{t1, t2})

ParseUpload accepts xlsx workbooks (first sheet) and comma- or
tab-delimited text. Concat unions the columns in first-seen order,
pads missing cells, and prepends a zero-based "Row Index" column
(renumbered to "Row Index 2" if an upload already uses that header).
The combined file downloads as combined_lab_data.xlsx.

# Failure Model

Export and merge failures are reported to the caller and never touch
stored experiment data; ErrExport wraps every serialization error, and
ErrNoRows narrows it to the caller-fixable empty-table case.
*/
package export
