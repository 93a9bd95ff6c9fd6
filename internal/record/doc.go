// Package record loads the messy and canonical CSV datasets into immutable
// in-memory records and writes the linked output CSV.
//
// Every record receives a stable identifier derived from its source file and
// row position at ingestion time. Field values pass through the normalize
// package once, at load time; records never mutate afterwards. The messy
// dataset's union_* columns are aliased into the canonical field schema so
// both datasets expose the same comparator fields.
package record
