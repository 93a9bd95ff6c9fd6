package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"gazetteer/internal/normalize"
)

var canonicalColumns = []string{
	FieldAbbrName,
	FieldFullName,
	FieldCity,
	FieldState,
	FieldFNum,
}

var messyColumns = []string{
	ColumnUnionName,
	ColumnUnionCity,
	ColumnUnionState,
}

// LoadCanonical reads the canonical gazetteer CSV. The header must carry the
// comparator fields and the f_num identifier column.
func LoadCanonical(path string) (*Dataset, error) {
	return load(path, canonicalColumns, nil)
}

// LoadMessy reads the messy input CSV and aliases its union_* columns into
// the canonical field schema: union_name populates both abbr_local_name and
// full_local_name, union_city becomes city, union_state becomes state.
func LoadMessy(path string) (*Dataset, error) {
	return load(path, messyColumns, aliasMessy)
}

func aliasMessy(fields map[string]string) {
	if name, ok := fields[ColumnUnionName]; ok {
		fields[FieldAbbrName] = name
		fields[FieldFullName] = name
	}
	if city, ok := fields[ColumnUnionCity]; ok {
		fields[FieldCity] = city
	}
	if state, ok := fields[ColumnUnionState]; ok {
		fields[FieldState] = state
	}
}

func load(path string, required []string, alias func(map[string]string)) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if err := checkColumns(path, header, required); err != nil {
		return nil, err
	}

	var records []*Record
	for row := 0; ; row++ {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		fields := normalize.Row(header, values)
		if alias != nil {
			alias(fields)
		}
		raw := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(values) {
				raw[name] = values[i]
			}
		}
		records = append(records, &Record{
			ID:     RecordID(path, row),
			Row:    row,
			Fields: fields,
			Raw:    raw,
		})
	}

	return NewDataset(path, records), nil
}

func checkColumns(path string, header []string, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	for _, name := range required {
		if _, ok := present[name]; !ok {
			return fmt.Errorf("dataset %s is missing required column %q", path, name)
		}
	}
	return nil
}
