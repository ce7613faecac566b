// =============================================================================
// CSV Monitor - File Utilities
// =============================================================================
//
// Small helpers shared by the pipeline and the CLI:
//   - input file checks
//   - input format detection by extension
//   - run identifiers
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Input formats returned by DetectFormat.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// xlsxExtensions are the workbook extensions excelize can read.
var xlsxExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// =============================================================================
// INPUT FILES
// =============================================================================

// CheckInputFile verifies that path exists and is a regular file.
//
// RETURNS:
//   - An error wrapping the os.Stat failure, or a plain error for directories.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %s is a directory", path)
	}
	return nil
}

// DetectFormat resolves the input format. An explicit "csv" or "xlsx" wins;
// anything else ("auto", "") is decided by the file extension, defaulting
// to CSV.
func DetectFormat(path, configured string) string {
	switch strings.ToLower(configured) {
	case FormatCSV:
		return FormatCSV
	case FormatXLSX:
		return FormatXLSX
	}

	if xlsxExtensions[strings.ToLower(filepath.Ext(path))] {
		return FormatXLSX
	}
	return FormatCSV
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

// NewRunID returns a random identifier for one pipeline run.
func NewRunID() string {
	return uuid.New().String()
}
