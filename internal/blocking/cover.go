package blocking

import (
	"gazetteer/internal/record"
)

// Selection is the outcome of the predicate cover search.
type Selection struct {
	Predicates []Predicate
	// Weights holds, per selected predicate, the fraction of labeled
	// positives it newly covered when chosen.
	Weights   []float64
	Covered   int
	Positives int
}

// FullCoverage reports whether every labeled positive pair is covered by at
// least one selected predicate.
func (s Selection) FullCoverage() bool {
	return s.Covered == s.Positives
}

// SelectPredicates greedily picks predicates until the labeled positive pairs
// are covered or no remaining predicate helps. A predicate whose candidate
// yield against the datasets exceeds maxPairs is treated as too permissive
// and skipped; partial coverage is returned rather than an error so the
// caller can warn and proceed with best-effort recall.
func SelectPredicates(available []Predicate, positives []Pair, messy, canonical *record.Dataset, maxPairs int) Selection {
	selection := Selection{Positives: len(positives)}
	if len(positives) == 0 || len(available) == 0 {
		return selection
	}

	type candidate struct {
		predicate Predicate
		covers    []int
		pairs     int
	}

	candidates := make([]candidate, 0, len(available))
	for _, predicate := range available {
		pairs := NewBlocker([]Predicate{predicate}, canonical).PairCount(messy)
		if maxPairs > 0 && pairs > maxPairs {
			continue
		}
		var covers []int
		for i, pos := range positives {
			if predicate.Covers(pos.Messy, pos.Canonical) {
				covers = append(covers, i)
			}
		}
		if len(covers) == 0 {
			continue
		}
		candidates = append(candidates, candidate{predicate: predicate, covers: covers, pairs: pairs})
	}

	covered := make([]bool, len(positives))
	for selection.Covered < len(positives) {
		bestIdx, bestGain, bestPairs := -1, 0, 0
		for i, cand := range candidates {
			gain := 0
			for _, pos := range cand.covers {
				if !covered[pos] {
					gain++
				}
			}
			if gain > bestGain || (gain == bestGain && gain > 0 && cand.pairs < bestPairs) {
				bestIdx, bestGain, bestPairs = i, gain, cand.pairs
			}
		}
		if bestIdx < 0 {
			break
		}
		best := candidates[bestIdx]
		for _, pos := range best.covers {
			if !covered[pos] {
				covered[pos] = true
				selection.Covered++
			}
		}
		selection.Predicates = append(selection.Predicates, best.predicate)
		selection.Weights = append(selection.Weights, float64(bestGain)/float64(len(positives)))
	}

	return selection
}
