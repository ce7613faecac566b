// =============================================================================
// CSV Monitor - Main Entry Point
// =============================================================================
//
// USAGE:
//   csv-monitor <monitor-name> <csv-path> [flags]
//   csv-monitor --version
//
// ARCHITECTURE:
//   - cmd/       : Cobra command definitions
//   - internal/  : Labeler, monitor, processor, record sources, pipeline
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv-monitor/cmd"
)

func main() {
	cmd.Execute()
}
