package xlsxparser

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv-monitor/internal/config"
	"github.com/ginjaninja78/csv-monitor/internal/types"
)

// writeWorkbook saves rows into sheet (created if needed) of a new workbook.
// A nil row leaves that spreadsheet row blank.
func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
	}
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "in.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *SheetReader) []types.Record {
	t.Helper()
	var out []types.Record
	for r.Next() {
		out = append(out, r.Record())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	return out
}

func TestSheetReader_FirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"type", "a", "b"},
		{"X", "1", "2"},
		{"Y", "3"},
	})

	r, err := Open(path, config.XLSXSettings{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	got := readAll(t, r)
	want := []types.Record{{"X", "1", "2"}, {"Y", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("records = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(r.Header(), types.Record{"type", "a", "b"}) {
		t.Fatalf("header = %v", r.Header())
	}
	if r.Sheet() != "Sheet1" || r.RowNumber() != 2 {
		t.Fatalf("sheet=%q row=%d", r.Sheet(), r.RowNumber())
	}
}

func TestSheetReader_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Data", [][]interface{}{
		{"type"},
		{"K", "v"},
	})

	r, err := Open(path, config.XLSXSettings{Sheet: "Data"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	got := readAll(t, r)
	if len(got) != 1 || got[0][0] != "K" {
		t.Fatalf("records = %v", got)
	}
}

func TestSheetReader_BlankRowIsEmptyRecord(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"type", "a"},
		{"X", "1"},
		nil,
		{"Y", "2"},
	})

	r, err := Open(path, config.XLSXSettings{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	got := readAll(t, r)
	if len(got) != 3 {
		t.Fatalf("expected 3 records including the blank one, got %v", got)
	}
	if len(got[1]) != 0 {
		t.Fatalf("blank row should have zero fields, got %v", got[1])
	}
}

func TestSheetReader_HeaderOnly(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{{"type", "a"}})

	r, err := Open(path, config.XLSXSettings{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := readAll(t, r); len(got) != 0 {
		t.Fatalf("expected no records, got %v", got)
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), config.XLSXSettings{}); err == nil {
		t.Fatal("expected error for missing workbook")
	}

	path := writeWorkbook(t, "Sheet1", [][]interface{}{{"type"}})
	if _, err := Open(path, config.XLSXSettings{Sheet: "Nope"}); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}
