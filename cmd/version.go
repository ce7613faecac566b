// =============================================================================
// CSV Monitor - Version Banner
// =============================================================================
//
// FLAG USAGE:
//   csv-monitor --version
//
// OUTPUT:
//   CSV Monitor
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//
// Version is a flag rather than a subcommand so that "version" stays usable
// as a monitor name.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/csv-monitor/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// versionTemplate is the cobra template rendered for --version. The version
// itself comes from the command's Version field.
func versionTemplate() string {
	return fmt.Sprintf("CSV Monitor\nVersion:    {{.Version}}\nBuild Date: %s\nGo Version: %s\n",
		BuildDate, runtime.Version())
}
