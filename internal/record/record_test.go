package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMessyAliasesColumns(t *testing.T) {
	path := writeCSV(t, "messy.csv",
		"union_name,union_city,union_state",
		`"Local 123, AFL-CIO",Reno,NV`,
	)

	ds, err := LoadMessy(path)
	if err != nil {
		t.Fatalf("LoadMessy failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", ds.Len())
	}

	rec := ds.Records[0]
	if rec.ID != RecordID(path, 0) {
		t.Errorf("unexpected ID %q", rec.ID)
	}
	for field, want := range map[string]string{
		FieldAbbrName:   "123 afl cio",
		FieldFullName:   "123 afl cio",
		FieldCity:       "reno",
		FieldState:      "nv",
		ColumnUnionName: "123 afl cio",
	} {
		if got, ok := rec.Field(field); !ok || got != want {
			t.Errorf("field %s = %q (present %v), want %q", field, got, ok, want)
		}
	}
}

func TestLoadMessyMissingColumn(t *testing.T) {
	path := writeCSV(t, "messy.csv",
		"union_name,union_city",
		"Local 1,Reno",
	)

	_, err := LoadMessy(path)
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "union_state") {
		t.Errorf("error should name the missing column: %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the offending path: %v", err)
	}
}

func TestLoadCanonicalMissingValues(t *testing.T) {
	path := writeCSV(t, "canonical.csv",
		"abbr_local_name,full_local_name,city,state,f_num",
		"Local 5,Plumbers Local 5,,n/a,F000005",
	)

	ds, err := LoadCanonical(path)
	if err != nil {
		t.Fatalf("LoadCanonical failed: %v", err)
	}
	rec := ds.Records[0]
	if _, ok := rec.Field(FieldCity); ok {
		t.Error("empty city should be missing")
	}
	if _, ok := rec.Field(FieldState); ok {
		t.Error("n/a state should be missing")
	}
	if fnum, _ := rec.Field(FieldFNum); fnum != "f000005" {
		t.Errorf("f_num = %q", fnum)
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.csv")
	if _, err := LoadMessy(missing); err == nil {
		t.Fatal("expected error for missing file")
	} else if !strings.Contains(err.Error(), missing) {
		t.Errorf("error should include path: %v", err)
	}
}

func TestRecordIDOrdering(t *testing.T) {
	// Zero padding keeps lexicographic order aligned with row order.
	if RecordID("x.csv", 2) >= RecordID("x.csv", 10) {
		t.Error("record IDs must sort in row order")
	}
}

func TestWriteLinked(t *testing.T) {
	messy := writeCSV(t, "messy.csv",
		"union_name,union_city,union_state",
		`"Local 123, AFL-CIO",Reno,NV`,
		"Unknown Lodge,Elko,NV",
	)
	output := filepath.Join(t.TempDir(), "out.csv")

	links := map[string]Link{
		RecordID(messy, 0): {CanonID: "F000123", Score: 0.97},
	}
	if err := WriteLinked(output, messy, links); err != nil {
		t.Fatalf("WriteLinked failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "canon_id,Link Score,union_name,union_city,union_state" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "F000123,0.97,") {
		t.Errorf("matched row should carry link columns: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], ",,Unknown Lodge") {
		t.Errorf("unmatched row should carry empty link columns: %s", lines[2])
	}
}
