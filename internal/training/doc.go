// Package training persists labeled candidate pairs between runs, backed by
// SQLite.
//
// Labels accumulate across labeling sessions as an ordered sequence, so
// retraining replays them in the order they were collected. A session's
// labels are committed in a single transaction at session end; a crash
// mid-session leaves the store at its previous state. Feature vectors are not
// stored: they are recomputed from the record identifiers at training time,
// which keeps the store independent of the comparator configuration.
package training
