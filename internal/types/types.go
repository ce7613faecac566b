// =============================================================================
// CSV Monitor - Shared Types
// =============================================================================
//
// This package contains the types passed between the record sources, the
// line processor and the monitor. Keeping them here avoids import cycles:
//   - csvparser / xlsxparser produce Records
//   - processor turns Records into Events
//   - monitor emits Events
//
// =============================================================================

package types

// Record is one parsed input line as an ordered sequence of fields.
// Its length varies from line to line; no fixed arity is enforced.
type Record []string

// Event is the key/value mapping built from a single Record.
// It is created fresh for every record and discarded after it is submitted.
type Event map[string]string

