// Package blocking generates candidate record pairs without comparing the
// full cross product of the two datasets.
//
// A predicate maps a record to cheap index keys (whole field value, single
// tokens, or a short prefix). Two records become a candidate pair when any
// selected predicate gives them a common key. Candidate generation is
// deterministic: messy records are visited in file order and canonical
// matches are emitted in identifier order.
//
// The package also hosts the greedy cover search that picks, from all
// available predicates, a small set covering the labeled positive pairs
// without flooding the scorer with candidates.
package blocking
