package monitor

import (
	"bufio"
	"io"
	"sort"

	"github.com/ginjaninja78/csv-monitor/internal/labeler"
	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// Emitter renders one event to a writer.
type Emitter interface {
	Emit(w io.Writer, ev types.Event) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(w io.Writer, ev types.Event) error

// Emit calls f(w, ev).
func (f EmitterFunc) Emit(w io.Writer, ev types.Event) error {
	return f(w, ev)
}

// KeyValueEmitter writes an event as space-separated key=value pairs on one
// line. Keys are ordered by labeler.Rank, ties broken alphabetically.
type KeyValueEmitter struct{}

// Emit writes ev followed by a newline.
func (KeyValueEmitter) Emit(w io.Writer, ev types.Event) error {
	bw := bufio.NewWriter(w)
	for i, key := range SortedKeys(ev) {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(key)
		bw.WriteByte('=')
		bw.WriteString(ev[key])
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// SortedKeys returns the keys of ev in printing order.
func SortedKeys(ev types.Event) []string {
	keys := make([]string, 0, len(ev))
	for k := range ev {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := labeler.Rank(keys[i]), labeler.Rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
