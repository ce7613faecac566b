// Package processor turns positional records into events and feeds them to a
// monitor.
package processor

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/csv-monitor/internal/labeler"
	"github.com/ginjaninja78/csv-monitor/internal/monitor"
	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// ErrEmptyRecord is returned for a record with no fields.
var ErrEmptyRecord = errors.New("empty record")

// RecordSource yields records in file order. Both the CSV parser and the
// XLSX sheet reader satisfy it.
type RecordSource interface {
	Next() bool
	Record() types.Record
	RowNumber() int
	Err() error
}

// Stats counts what the processor has seen.
type Stats struct {
	Records          int
	MissedOverwrites int
}

// Processor builds one event per record and submits it to a monitor.
type Processor struct {
	monitor *monitor.Monitor
	stats   Stats
}

// New returns a Processor that submits to m.
func New(m *monitor.Monitor) *Processor {
	return &Processor{monitor: m}
}

// BuildEvent maps rec to an event: field 0 under "kind", field i under
// labeler.Label(i). Fields past position 9 all share the "missed" key; the
// last one wins. The second result counts those overwrites.
func BuildEvent(rec types.Record) (types.Event, int, error) {
	if len(rec) == 0 {
		return nil, 0, ErrEmptyRecord
	}

	ev := make(types.Event, len(rec))
	ev[labeler.KindKey] = rec[0]

	overwrites := 0
	for i := 1; i < len(rec); i++ {
		key := labeler.Label(i)
		if _, dup := ev[key]; dup {
			overwrites++
		}
		ev[key] = rec[i]
	}
	return ev, overwrites, nil
}

// Submit builds the event for rec and hands it to the monitor.
func (p *Processor) Submit(rec types.Record) error {
	ev, overwrites, err := BuildEvent(rec)
	if err != nil {
		return err
	}
	if err := p.monitor.Submit(ev); err != nil {
		return err
	}
	p.stats.Records++
	p.stats.MissedOverwrites += overwrites
	return nil
}

// Run submits every record from src and then terminates the monitor. On the
// first source or submit error it returns without terminating.
func (p *Processor) Run(src RecordSource) error {
	for src.Next() {
		if err := p.Submit(src.Record()); err != nil {
			return fmt.Errorf("row %d: %w", src.RowNumber(), err)
		}
	}
	if err := src.Err(); err != nil {
		return err
	}
	return p.monitor.Terminate()
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}
