// =============================================================================
// CSV Monitor - CSV Parser Module
// =============================================================================
//
// This module streams records out of a CSV file that starts with a single
// header row. The header is consumed and discarded: columns are addressed by
// position, never by header name.
//
// FEATURES:
//   - Configurable delimiter, lazy quoting, leading-space trimming, comments
//   - Variable number of fields per record
//   - Buffered, one-record-at-a-time reading
//   - Parse errors are fatal and carry the data row number
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/csv-monitor/internal/config"
	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads a CSV source one record at a time.
//
// USAGE:
//   parser, err := csvparser.Open(filePath, settings)
//   if err != nil {
//       return err
//   }
//   defer parser.Close()
//
//   for parser.Next() {
//       rec := parser.Record()
//       // Process the record...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	closer    io.Closer
	reader    *csv.Reader
	header    types.Record
	current   types.Record
	rowNumber int
	done      bool
	err       error
}

// Open opens filePath and returns a parser positioned after the header row.
// The caller must Close the parser to release the file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the StreamingParser.
//   - An error if the file cannot be opened or the header cannot be read.
func Open(filePath string, settings config.CSVSettings) (*StreamingParser, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	parser, err := NewStreamingParser(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	parser.closer = file

	return parser, nil
}

// NewStreamingParser wraps r in a buffered CSV reader and consumes the
// header row. An empty input is valid and yields no records.
func NewStreamingParser(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	parser := &StreamingParser{reader: reader}

	if err := parser.readHeader(); err != nil {
		return nil, err
	}

	return parser, nil
}

// configureReader applies the settings to the CSV reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.DelimiterRune()
	if err != nil {
		return err
	}
	reader.Comma = comma
	reader.Comment = settings.CommentRune()

	// Records are positional; their length may vary from line to line.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes
	reader.TrimLeadingSpace = settings.TrimLeadingSpace

	return nil
}

// readHeader reads and stores the header row.
func (p *StreamingParser) readHeader() error {
	row, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		p.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading header row: %w", err)
	}
	p.header = row
	return nil
}

// Next advances to the next record. It returns false at end of input or on
// the first error; check Err afterwards.
func (p *StreamingParser) Next() bool {
	if p.done || p.err != nil {
		return false
	}

	row, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		p.done = true
		return false
	}
	if err != nil {
		p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
		return false
	}

	p.rowNumber++
	p.current = row
	return true
}

// Record returns the current record.
func (p *StreamingParser) Record() types.Record {
	return p.current
}

// Header returns the consumed header row, or nil for an empty input.
func (p *StreamingParser) Header() types.Record {
	return p.header
}

// RowNumber returns the current data row number (1-indexed, header excluded).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns the error that stopped iteration, if any.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close closes the underlying file when the parser was created by Open.
func (p *StreamingParser) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}
