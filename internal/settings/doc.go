// Package settings persists the trained linker state: comparator fields,
// selected blocking predicates, classifier coefficients, and IDF tables.
//
// The on-disk format is explicit, versioned JSON rather than an opaque
// serialization, so a reload reproduces scoring behavior exactly and older
// files are rejected with a clear version error. Writes go through a temp
// file and rename. A file lock serializes access across processes; runs
// never share settings concurrently.
package settings
