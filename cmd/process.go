// =============================================================================
// CSV Monitor - Run Driver
// =============================================================================
//
// runMonitor resolves the configuration (defaults, then YAML file, then any
// flag the user set explicitly), builds the logger and runs the pipeline.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv-monitor/internal/config"
	"github.com/ginjaninja78/csv-monitor/internal/logging"
	"github.com/ginjaninja78/csv-monitor/internal/pipeline"
)

// runMonitor is the body of the root command.
func runMonitor(cmd *cobra.Command, opts *options, monitorName, inputPath string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "csv-monitor",
		Writer:    cmd.ErrOrStderr(),
	})

	result := pipeline.New(monitorName, inputPath, cfg, cmd.OutOrStdout(), logger).Run()
	if !result.Success {
		return result.Error
	}
	return nil
}

// resolveConfig loads the config file, if any, and applies explicitly set
// flags on top of it.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		loaded, err := config.Load(opts.cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("print") {
		cfg.Print = opts.print
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("delimiter") {
		cfg.CSVSettings.Delimiter = opts.delimiter
	}
	if flags.Changed("lazy-quotes") {
		cfg.CSVSettings.LazyQuotes = opts.lazyQuotes
	}
	if flags.Changed("sheet") {
		cfg.XLSXSettings.Sheet = opts.sheet
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = opts.metricsTextfile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
