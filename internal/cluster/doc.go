// Package cluster turns classified candidate pairs into the final
// many-to-one link assignments.
//
// Each messy record links to at most one canonical record: the one with the
// highest match probability above the cutoff, ties resolved toward the
// lowest canonical identifier. Canonical records may anchor any number of
// links. Resolution costs one sort over the surviving pairs, not a pass over
// the record cross product.
package cluster
