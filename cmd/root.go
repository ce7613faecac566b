// =============================================================================
// CSV Monitor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command runs
// a monitor over one input file.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv-monitor <monitor-name> <csv-path>)
//     --version  prints the version banner
//     --help     prints usage
//
//   The root command has no subcommands, so cobra adds no "help" or
//   "completion" command and any monitor name reaches RunE.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// options holds the flag values of one command invocation.
type options struct {
	cfgFile         string
	print           bool
	format          string
	delimiter       string
	lazyQuotes      bool
	sheet           string
	metricsTextfile string
	logLevel        string
	logFormat       string
	verbose         bool
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage message.
		Use: "csv-monitor <monitor-name> <csv-path>",

		Short: "Stream a CSV file through a monitor, bracketed by BEGIN/END",

		Long: `csv-monitor reads a CSV file with a header row and turns every data row
into a key=value event: column 0 becomes "kind", columns 1..9 become
"one".."nine", and any later column becomes "missed".

Standard output always carries a BEGIN line before the first row and an END
line after the last one. Events are printed between them only when printing
is enabled with --print or "print: true" in the config file.

XLSX workbooks are read the same way, using the first sheet unless --sheet
is given.

Example Usage:
  csv-monitor orders ./orders.csv                   # BEGIN / END only
  csv-monitor orders ./orders.csv --print           # print every row
  csv-monitor orders ./orders.xlsx --sheet Q3       # read a workbook sheet
  csv-monitor orders ./orders.csv --config mon.yaml # settings from YAML`,

		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},

		Version: Version,

		// Errors are printed once, by Execute. Usage goes to stderr through
		// usageError; stdout carries only the monitor output.
		SilenceErrors: true,
		SilenceUsage:  true,

		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, opts, args[0], args[1])
		},
	}

	rootCmd.SetVersionTemplate(versionTemplate())
	rootCmd.SetFlagErrorFunc(usageError)

	// ==========================================================================
	// FLAGS
	// ==========================================================================

	flags := rootCmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "Path to a YAML configuration file (optional)")
	flags.BoolVar(&opts.print, "print", false, "Print every row as key=value pairs")
	flags.StringVar(&opts.format, "format", "auto", "Input format: auto, csv or xlsx")
	flags.StringVar(&opts.delimiter, "delimiter", ",", "CSV field delimiter (or tab, pipe, semicolon)")
	flags.BoolVar(&opts.lazyQuotes, "lazy-quotes", false, "Accept malformed CSV quoting instead of failing")
	flags.StringVar(&opts.sheet, "sheet", "", "XLSX sheet to read (default: first sheet)")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write run metrics to this file in Prometheus text format")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Diagnostics level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "console", "Diagnostics format: console or json")

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug diagnostics on stderr")

	return rootCmd
}

// usageError writes the usage text to stderr and returns err unchanged.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return err
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
