package record

import "fmt"

// Field names shared by both datasets after aliasing.
const (
	FieldAbbrName = "abbr_local_name"
	FieldFullName = "full_local_name"
	FieldCity     = "city"
	FieldState    = "state"
	FieldFNum     = "f_num"
)

// Messy-side column names aliased into the canonical schema at load time.
const (
	ColumnUnionName  = "union_name"
	ColumnUnionCity  = "union_city"
	ColumnUnionState = "union_state"
)

// Record is one CSV row after normalization. Fields holds only present
// values; a missing or cleaned-away value has no key. Raw preserves the
// uncleaned column values for output, keyed by column name. Records are
// immutable once loaded.
type Record struct {
	ID     string
	Row    int
	Fields map[string]string
	Raw    map[string]string
}

// Field returns the normalized value for name and whether it is present.
func (r *Record) Field(name string) (string, bool) {
	value, ok := r.Fields[name]
	return value, ok
}

// Dataset is an ordered collection of records from one CSV file.
type Dataset struct {
	Source  string
	Records []*Record

	byID map[string]*Record
}

// Get returns the record with the given identifier, or nil.
func (d *Dataset) Get(id string) *Record {
	if d == nil {
		return nil
	}
	return d.byID[id]
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// RecordID builds the stable identifier for a row of a source file. Row
// numbers are zero padded so lexicographic identifier order matches file
// order, which the cluster resolver relies on for deterministic tie-breaks.
func RecordID(source string, row int) string {
	return fmt.Sprintf("%s:%06d", source, row)
}

// NewDataset indexes records by identifier under the given source name.
func NewDataset(source string, records []*Record) *Dataset {
	byID := make(map[string]*Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	return &Dataset{Source: source, Records: records, byID: byID}
}
