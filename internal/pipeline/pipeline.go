// =============================================================================
// CSV Monitor - Pipeline Module
// =============================================================================
//
// This module runs one monitor over one input file, start to finish.
//
// PIPELINE:
//   1. Check and open the input (CSV or XLSX)
//   2. Create the monitor (writes BEGIN)
//   3. Stream every record through the line processor
//   4. Terminate the monitor (writes END)
//   5. Close the input, on every path
//   6. Record statistics and, if configured, write the metrics textfile
//
// A failure in step 1 produces no output at all. A failure in step 3 leaves
// BEGIN (and any rows already printed) on the output but never END.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/csv-monitor/internal/config"
	"github.com/ginjaninja78/csv-monitor/internal/csvparser"
	"github.com/ginjaninja78/csv-monitor/internal/metrics"
	"github.com/ginjaninja78/csv-monitor/internal/monitor"
	"github.com/ginjaninja78/csv-monitor/internal/processor"
	"github.com/ginjaninja78/csv-monitor/internal/xlsxparser"
	"github.com/ginjaninja78/csv-monitor/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// RunID identifies this run in logs.
	RunID string

	// Format is the input format that was used ("csv" or "xlsx").
	Format string

	// Success indicates whether the run reached END.
	Success bool

	// Error is set when Success is false.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about the run.
type Stats struct {
	// RecordsProcessed is the number of data records submitted.
	RecordsProcessed int

	// EventsPrinted is the number of events written to the output.
	EventsPrinted int

	// MissedOverwrites counts fields past position nine that replaced an
	// earlier "missed" value in the same event.
	MissedOverwrites int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// source is a record source that owns a file handle.
type source interface {
	processor.RecordSource
	io.Closer
}

// Pipeline runs a named monitor over an input file.
type Pipeline struct {
	name    string
	path    string
	cfg     *config.Config
	out     io.Writer
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// New creates a Pipeline.
//
// PARAMETERS:
//   - name: The monitor name (first CLI argument).
//   - path: The input file (second CLI argument).
//   - cfg: The resolved configuration; nil means config.Default().
//   - out: Where BEGIN, events and END are written.
//   - logger: Diagnostics logger.
func New(name, path string, cfg *config.Config, out io.Writer, logger zerolog.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		name:    name,
		path:    path,
		cfg:     cfg,
		out:     out,
		logger:  logger,
		metrics: metrics.New(),
	}
}

// Metrics returns the collector the pipeline reports into.
func (p *Pipeline) Metrics() *metrics.Collector {
	return p.metrics
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline and returns its Result. It never panics on bad
// input; every failure is reported through Result.Error.
func (p *Pipeline) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: p.path,
		RunID:    utils.NewRunID(),
		Format:   utils.DetectFormat(p.path, p.cfg.Format),
	}

	log := p.logger.With().
		Str("run_id", result.RunID).
		Str("monitor", p.name).
		Str("file", p.path).
		Str("format", result.Format).
		Logger()

	log.Debug().Bool("print", p.cfg.Print).Msg("starting run")

	result.Error = p.run(&result, log)
	result.Success = result.Error == nil
	result.Stats.ProcessingTime = time.Since(startTime)

	p.metrics.Observe(metrics.Run{
		Monitor:          p.name,
		Records:          result.Stats.RecordsProcessed,
		EventsPrinted:    result.Stats.EventsPrinted,
		MissedOverwrites: result.Stats.MissedOverwrites,
		Duration:         result.Stats.ProcessingTime,
		Success:          result.Success,
	})
	if p.cfg.MetricsTextfile != "" {
		if err := p.metrics.WriteTextfile(p.cfg.MetricsTextfile); err != nil {
			log.Warn().Err(err).Str("path", p.cfg.MetricsTextfile).Msg("metrics textfile not written")
		}
	}

	if result.Success {
		log.Info().
			Int("records", result.Stats.RecordsProcessed).
			Int("printed", result.Stats.EventsPrinted).
			Dur("elapsed", result.Stats.ProcessingTime).
			Msg("run complete")
	} else {
		log.Error().Err(result.Error).
			Int("records", result.Stats.RecordsProcessed).
			Msg("run failed")
	}

	return result
}

// run does the work between opening and closing the input, so the deferred
// Close happens before statistics are published.
func (p *Pipeline) run(result *Result, log zerolog.Logger) error {
	// =========================================================================
	// STEP 1: OPEN INPUT
	// =========================================================================

	src, err := p.openSource(result.Format)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close input")
		}
	}()

	// =========================================================================
	// STEP 2: CREATE MONITOR
	// =========================================================================

	mon, err := monitor.New(p.name, p.out, monitor.Options{Print: p.cfg.Print})
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3-4: PROCESS RECORDS AND TERMINATE
	// =========================================================================

	proc := processor.New(mon)
	runErr := proc.Run(src)

	stats := proc.Stats()
	result.Stats.RecordsProcessed = stats.Records
	result.Stats.MissedOverwrites = stats.MissedOverwrites
	result.Stats.EventsPrinted = mon.Emitted()

	if stats.MissedOverwrites > 0 {
		log.Debug().Int("overwrites", stats.MissedOverwrites).Msg("records wider than ten fields collapsed into missed")
	}

	if runErr != nil {
		return fmt.Errorf("failed to process %s: %w", p.path, runErr)
	}
	return nil
}

// openSource opens the input in the given format.
func (p *Pipeline) openSource(format string) (source, error) {
	if err := utils.CheckInputFile(p.path); err != nil {
		return nil, err
	}

	switch format {
	case utils.FormatXLSX:
		r, err := xlsxparser.Open(p.path, p.cfg.XLSXSettings)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		return r, nil
	default:
		r, err := csvparser.Open(p.path, p.cfg.CSVSettings)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		return r, nil
	}
}
