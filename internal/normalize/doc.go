// Package normalize canonicalizes raw CSV field values before comparison.
//
// Cleaning applies a fixed, order-sensitive rule sequence: newline removal,
// noise-token removal (n/a, na, local), punctuation substitution, whitespace
// collapsing, case folding, and per-token leading-zero stripping. The rules
// are deliberately conservative so that two spellings of the same union local
// converge on the same canonical string.
//
// A value that cleans down to nothing is reported as missing rather than as
// an empty string; downstream comparators treat absent fields explicitly.
package normalize
