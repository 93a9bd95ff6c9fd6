// Package linker orchestrates the full record-linkage run: loading and
// normalizing the canonical and messy CSV files, collecting labels through
// active learning, training the pairwise classifier, selecting blocking
// predicates, and resolving many-to-one links.
//
// The Engine owns the run lock, the trained settings file, and the labeled
// example store, so commands only decide which operation to invoke.
package linker
