// =============================================================================
// CSV Monitor - XLSX Sheet Reader
// =============================================================================
//
// This module streams records out of one sheet of an XLSX workbook, with the
// same contract as the CSV parser: the first row is a header and is skipped,
// every following row is a positional record.
//
// NOTES:
//   - Cells are read as their formatted string values.
//   - Trailing empty cells are dropped by excelize, so records vary in length.
//   - A blank row inside the data range is returned as a zero-field record.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv-monitor/internal/config"
	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// SheetReader reads one worksheet row by row.
type SheetReader struct {
	file      *excelize.File
	rows      *excelize.Rows
	sheet     string
	header    types.Record
	current   types.Record
	rowNumber int
	done      bool
	err       error
}

// Open opens the workbook at path and positions the reader after the header
// row of the configured sheet. The caller must Close the reader.
//
// PARAMETERS:
//   - path: The path to the XLSX workbook.
//   - settings: Sheet selection; an empty sheet name means the first sheet.
//
// RETURNS:
//   - A pointer to the SheetReader.
//   - An error if the workbook or sheet cannot be opened.
func Open(path string, settings config.XLSXSettings) (*SheetReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	r, err := newSheetReader(f, settings.Sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func newSheetReader(f *excelize.File, sheet string) (*SheetReader, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	r := &SheetReader{file: f, rows: rows, sheet: sheet}

	// Header row.
	if !rows.Next() {
		r.done = true
		if err := rows.Error(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error reading header row: %w", err)
		}
		return r, nil
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("error reading header row: %w", err)
	}
	r.header = header

	return r, nil
}

// Next advances to the next row.
func (r *SheetReader) Next() bool {
	if r.done || r.err != nil {
		return false
	}

	if !r.rows.Next() {
		r.done = true
		if err := r.rows.Error(); err != nil {
			r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
		}
		return false
	}

	cols, err := r.rows.Columns()
	if err != nil {
		r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
		return false
	}

	r.rowNumber++
	r.current = cols
	return true
}

// Record returns the current record.
func (r *SheetReader) Record() types.Record { return r.current }

// Header returns the header row, or nil for an empty sheet.
func (r *SheetReader) Header() types.Record { return r.header }

// RowNumber returns the current data row number (1-indexed, header excluded).
func (r *SheetReader) RowNumber() int { return r.rowNumber }

// Err returns the error that stopped iteration, if any.
func (r *SheetReader) Err() error { return r.err }

// Sheet returns the name of the sheet being read.
func (r *SheetReader) Sheet() string { return r.sheet }

// Close releases the row iterator and the workbook.
func (r *SheetReader) Close() error {
	if r.file == nil {
		return nil
	}
	rowsErr := r.rows.Close()
	fileErr := r.file.Close()
	r.file = nil
	if rowsErr != nil {
		return rowsErr
	}
	return fileErr
}
