// Package learner trains the pairwise match classifier.
//
// Labeling runs as a blocking request/response loop: the loop repeatedly
// picks the unlabeled candidate pair the current model is least certain
// about, suspends on an Oracle for a label, and resumes once one arrives.
// The Oracle abstraction decouples the loop from its label source: the CLI
// supplies an interactive terminal oracle, tests and replay runs supply a
// scripted one.
//
// Training fits a logistic regression over the accumulated feature vectors.
// It refuses to run until both a match and a distinct example exist, and it
// is deterministic: the same labeled examples always produce the same
// coefficients.
package learner
