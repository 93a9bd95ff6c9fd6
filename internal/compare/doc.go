// Package compare turns a candidate record pair into a fixed-length feature
// vector, one similarity score per configured field comparator.
//
// Three comparator types are supported: short strings use normalized edit
// distance, free text uses TF-IDF weighted cosine similarity over a corpus
// built from both datasets, and plain strings use an exact-match indicator.
// Fields configured with has_missing contribute an extra indicator feature so
// the classifier can learn how much an absent value should count.
package compare
