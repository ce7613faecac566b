package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.WarnLevel},
		{"   nonsense   ", zerolog.WarnLevel},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Component: "pipeline", Writer: &buf})

	log.Info().Str("k", "v").Msg("hello")
	log.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"component":"pipeline"`) {
		t.Fatalf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("missing message: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %s", out)
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "console", Writer: &buf})

	log.Warn().Str("monitor", "m1").Msg("careful")

	out := buf.String()
	if !strings.Contains(out, "careful") || !strings.Contains(out, "monitor=m1") {
		t.Fatalf("unexpected console output: %q", out)
	}
}
