package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve_Counters(t *testing.T) {
	c := New()
	c.Observe(Run{Monitor: "m", Records: 3, EventsPrinted: 2, MissedOverwrites: 1, Duration: time.Second, Success: true})
	c.Observe(Run{Monitor: "m", Records: 4})

	if got := testutil.ToFloat64(c.records.WithLabelValues("m")); got != 7 {
		t.Fatalf("records_total = %v, want 7", got)
	}
	if got := testutil.ToFloat64(c.eventsPrinted.WithLabelValues("m")); got != 2 {
		t.Fatalf("events_printed_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.lastRunSuccess.WithLabelValues("m")); got != 0 {
		t.Fatalf("last_run_success = %v, want 0 after failed run", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Observe(Run{Monitor: "orders", Records: 5, Success: true, Duration: 250 * time.Millisecond})

	path := filepath.Join(t.TempDir(), "run.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{
		`csv_monitor_records_total{monitor="orders"} 5`,
		`csv_monitor_last_run_success{monitor="orders"} 1`,
		`csv_monitor_run_duration_seconds{monitor="orders"} 0.25`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextfile_BadDir(t *testing.T) {
	c := New()
	if err := c.WriteTextfile(filepath.Join(t.TempDir(), "no", "such", "dir", "m.prom")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
