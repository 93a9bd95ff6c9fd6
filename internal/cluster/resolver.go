package cluster

import (
	"sort"

	"gazetteer/internal/blocking"
)

// ScoredPair is a candidate pair with its classified match probability.
type ScoredPair struct {
	Pair        blocking.Pair
	Probability float64
}

// Assignment links one messy record to its chosen canonical record.
type Assignment struct {
	MessyID     string
	CanonicalID string
	Score       float64
}

// Resolve applies the many-to-one constraint: for every messy record the
// canonical partner with the highest probability above cutoff wins, ties
// going to the lowest canonical identifier. Messy records whose best score
// does not exceed the cutoff stay unlinked and are absent from the result.
// The result is ordered by messy record position.
func Resolve(pairs []ScoredPair, cutoff float64) []Assignment {
	surviving := make([]ScoredPair, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Probability > cutoff {
			surviving = append(surviving, pair)
		}
	}

	// One deterministic sort: messy order first, then best probability,
	// then canonical identifier for the tie-break. The first pair seen per
	// messy record is its assignment.
	sort.Slice(surviving, func(i, j int) bool {
		a, b := surviving[i], surviving[j]
		if a.Pair.Messy.Row != b.Pair.Messy.Row {
			return a.Pair.Messy.Row < b.Pair.Messy.Row
		}
		if a.Probability != b.Probability {
			return a.Probability > b.Probability
		}
		return a.Pair.Canonical.ID < b.Pair.Canonical.ID
	})

	var assignments []Assignment
	lastMessy := ""
	for _, pair := range surviving {
		if pair.Pair.Messy.ID == lastMessy {
			continue
		}
		lastMessy = pair.Pair.Messy.ID
		assignments = append(assignments, Assignment{
			MessyID:     pair.Pair.Messy.ID,
			CanonicalID: pair.Pair.Canonical.ID,
			Score:       pair.Probability,
		})
	}
	return assignments
}
