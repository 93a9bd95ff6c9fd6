package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// WriteCSV writes a CSV file with the given header and rows, creating parent
// directories as needed.
func WriteCSV(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
}

// WriteCanonicalCSV writes a gazetteer-shaped canonical file to path.
// Each row is abbr_local_name, full_local_name, city, state, f_num.
func WriteCanonicalCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()
	WriteCSV(t, path, []string{"abbr_local_name", "full_local_name", "city", "state", "f_num"}, rows)
}

// WriteMessyCSV writes a filer-shaped messy file to path. Each row is
// union_name, union_city, union_state.
func WriteMessyCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()
	WriteCSV(t, path, []string{"union_name", "union_city", "union_state"}, rows)
}
