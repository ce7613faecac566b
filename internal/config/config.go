// =============================================================================
// CSV Monitor - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// built-in default, so the tool runs with no file at all. Command-line flags
// are applied on top of whatever this module returns (see cmd/root.go).
//
// CONFIGURATION FILE (all keys optional):
//   print: false
//   format: auto
//   csv_settings:
//     delimiter: ","
//     lazy_quotes: false
//     trim_leading_space: false
//     comment: ""
//   xlsx_settings:
//     sheet: ""
//   metrics_textfile: ""
//   log_level: warn
//   log_format: console
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Input formats.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the run configuration.
type Config struct {
	// Print enables per-record key=value output between BEGIN and END.
	// Default: false
	Print bool `yaml:"print"`

	// Format selects the record source: "auto", "csv" or "xlsx".
	// "auto" decides by file extension.
	// Default: "auto"
	Format string `yaml:"format"`

	// CSVSettings contains settings for parsing CSV input.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings contains settings for reading XLSX input.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`

	// MetricsTextfile is where run metrics are written in Prometheus text
	// format. Empty disables the metrics file.
	MetricsTextfile string `yaml:"metrics_textfile"`

	// LogLevel controls the verbosity of stderr diagnostics.
	// Valid values: "trace", "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or one of the
	// aliases "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// LazyQuotes relaxes quote handling. With the default (false), an
	// unbalanced quote is a fatal parse error.
	LazyQuotes bool `yaml:"lazy_quotes"`

	// TrimLeadingSpace drops leading white space in a field.
	TrimLeadingSpace bool `yaml:"trim_leading_space"`

	// Comment, when set, marks lines starting with that character as comments.
	Comment string `yaml:"comment"`
}

// XLSXSettings contains settings for reading XLSX workbooks.
type XLSXSettings struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML configuration file at path, fills in defaults and
// validates the result.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
}

// Validate checks the configuration. It is called by Load and again by the
// command after flags have been applied.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case FormatAuto, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	delim, err := c.CSVSettings.DelimiterRune()
	if err != nil {
		return err
	}

	if c.CSVSettings.Comment != "" {
		comment, err := singleRune("comment", c.CSVSettings.Comment)
		if err != nil {
			return err
		}
		if comment == delim {
			return fmt.Errorf("%w: comment and delimiter must differ", ErrInvalidConfig)
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

// =============================================================================
// CSV SETTINGS HELPERS
// =============================================================================

// DelimiterRune resolves the configured delimiter to the rune handed to the
// CSV reader.
func (s CSVSettings) DelimiterRune() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r, err := singleRune("delimiter", s.Delimiter)
	if err != nil {
		return 0, err
	}
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: delimiter %q is not allowed", ErrInvalidConfig, s.Delimiter)
	}
	return r, nil
}

// CommentRune returns the comment rune, or 0 when comments are disabled.
func (s CSVSettings) CommentRune() rune {
	if s.Comment == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.Comment)
	return r
}

func singleRune(name, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidConfig, name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
