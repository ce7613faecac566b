// Package metrics records per-run counters on a private Prometheus registry
// and writes them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "csv_monitor"

// Collector holds the run metrics for one pipeline.
type Collector struct {
	registry *prometheus.Registry

	records          *prometheus.CounterVec
	eventsPrinted    *prometheus.CounterVec
	missedOverwrites *prometheus.CounterVec
	runDuration      *prometheus.GaugeVec
	lastRunSuccess   *prometheus.GaugeVec
}

// Run is what a single pipeline run reports.
type Run struct {
	Monitor          string
	Records          int
	EventsPrinted    int
	MissedOverwrites int
	Duration         time.Duration
	Success          bool
}

// New builds a Collector with its own registry.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.records = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Data records read from the input file",
	}, []string{"monitor"})
	c.eventsPrinted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_printed_total",
		Help:      "Events written to standard output",
	}, []string{"monitor"})
	c.missedOverwrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "missed_overwrites_total",
		Help:      "Fields past position nine that replaced an earlier missed value",
	}, []string{"monitor"})
	c.runDuration = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	}, []string{"monitor"})
	c.lastRunSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_success",
		Help:      "1 if the last run completed, 0 otherwise",
	}, []string{"monitor"})

	c.registry.MustRegister(c.records, c.eventsPrinted, c.missedOverwrites, c.runDuration, c.lastRunSuccess)
	return c
}

// Observe adds a finished run to the collector.
func (c *Collector) Observe(r Run) {
	c.records.WithLabelValues(r.Monitor).Add(float64(r.Records))
	c.eventsPrinted.WithLabelValues(r.Monitor).Add(float64(r.EventsPrinted))
	c.missedOverwrites.WithLabelValues(r.Monitor).Add(float64(r.MissedOverwrites))
	c.runDuration.WithLabelValues(r.Monitor).Set(r.Duration.Seconds())

	success := 0.0
	if r.Success {
		success = 1
	}
	c.lastRunSuccess.WithLabelValues(r.Monitor).Set(success)
}

// Gatherer exposes the registry, e.g. for testutil or an HTTP handler.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile writes all metrics to path in Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
