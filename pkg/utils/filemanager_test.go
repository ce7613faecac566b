package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path, configured, want string
	}{
		{"in.csv", "auto", FormatCSV},
		{"in.CSV", "", FormatCSV},
		{"in.txt", "auto", FormatCSV},
		{"noext", "auto", FormatCSV},
		{"book.xlsx", "auto", FormatXLSX},
		{"BOOK.XLSM", "", FormatXLSX},
		{"book.xlsx", "csv", FormatCSV},
		{"data.csv", "XLSX", FormatXLSX},
	}
	for _, c := range cases {
		if got := DetectFormat(c.path, c.configured); got != c.want {
			t.Fatalf("DetectFormat(%q, %q) = %q, want %q", c.path, c.configured, got, c.want)
		}
	}
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()

	if err := CheckInputFile(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v, want os.ErrNotExist", err)
	}
	if err := CheckInputFile(dir); err == nil {
		t.Fatal("directory should be rejected")
	}

	path := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(path, []byte("h\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckInputFile(path); err != nil {
		t.Fatalf("regular file: %v", err)
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Fatal("run IDs should differ")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("run ID %q is not a UUID: %v", a, err)
	}
}
