// =============================================================================
// CSV Monitor - Monitor Module
// =============================================================================
//
// The Monitor is the lifecycle wrapper around event output. It writes the
// lifecycle markers and hands each submitted event to an Emitter when
// printing is enabled.
//
// STATE MACHINE:
//   Created  -- New writes "BEGIN"        --> Running
//   Running  -- Submit (zero or more)     --> Running
//   Running  -- Terminate writes "END"    --> Terminated
//   Terminated is final; Submit and Terminate fail with ErrInvalidState.
//
// =============================================================================

package monitor

import (
	"errors"
	"fmt"
	"io"

	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// Lifecycle marker lines.
const (
	BeginMarker = "BEGIN"
	EndMarker   = "END"
)

// ErrInvalidState is returned when the monitor is used after Terminate.
var ErrInvalidState = errors.New("invalid state")

// State is the lifecycle state of a Monitor.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures a Monitor at construction time.
type Options struct {
	// Print enables emitting each submitted event.
	Print bool

	// Emitter renders events. Nil means KeyValueEmitter.
	Emitter Emitter
}

// Monitor writes lifecycle markers and optionally emits events.
type Monitor struct {
	name    string
	w       io.Writer
	print   bool
	emitter Emitter
	state   State

	submitted int
	emitted   int
}

// New creates a Monitor, writes the BEGIN marker to w and moves to Running.
//
// PARAMETERS:
//   - name: The monitor name. It is stored, never printed.
//   - w: Destination for markers and emitted events.
//   - opts: Construction-time options.
//
// RETURNS:
//   - The running Monitor.
//   - An error if the BEGIN marker cannot be written.
func New(name string, w io.Writer, opts Options) (*Monitor, error) {
	m := &Monitor{
		name:    name,
		w:       w,
		print:   opts.Print,
		emitter: opts.Emitter,
		state:   StateCreated,
	}
	if m.emitter == nil {
		m.emitter = KeyValueEmitter{}
	}

	if _, err := fmt.Fprintln(w, BeginMarker); err != nil {
		return nil, fmt.Errorf("failed to write %s marker: %w", BeginMarker, err)
	}
	m.state = StateRunning

	return m, nil
}

// Submit hands an event to the emitter when printing is enabled.
func (m *Monitor) Submit(ev types.Event) error {
	if m.state != StateRunning {
		return fmt.Errorf("submit on %s monitor %q: %w", m.state, m.name, ErrInvalidState)
	}

	m.submitted++
	if !m.print {
		return nil
	}

	if err := m.emitter.Emit(m.w, ev); err != nil {
		return fmt.Errorf("failed to emit event: %w", err)
	}
	m.emitted++
	return nil
}

// Terminate writes the END marker. It may be called once.
func (m *Monitor) Terminate() error {
	if m.state != StateRunning {
		return fmt.Errorf("terminate on %s monitor %q: %w", m.state, m.name, ErrInvalidState)
	}
	m.state = StateTerminated

	if _, err := fmt.Fprintln(m.w, EndMarker); err != nil {
		return fmt.Errorf("failed to write %s marker: %w", EndMarker, err)
	}
	return nil
}

// Name returns the monitor name.
func (m *Monitor) Name() string { return m.name }

// State returns the current lifecycle state.
func (m *Monitor) State() State { return m.state }

// Submitted returns the number of accepted events.
func (m *Monitor) Submitted() int { return m.submitted }

// Emitted returns the number of events actually written.
func (m *Monitor) Emitted() int { return m.emitted }
