package blocking

import (
	"sort"

	"gazetteer/internal/record"
)

// Pair is one messy/canonical candidate produced by blocking.
type Pair struct {
	Messy     *record.Record
	Canonical *record.Record
}

// Key identifies the pair across runs and sessions.
func (p Pair) Key() string {
	return p.Messy.ID + "|" + p.Canonical.ID
}

// Blocker indexes the canonical dataset under a predicate set and generates
// candidate pairs for messy records.
type Blocker struct {
	predicates []Predicate
	indexes    []map[string][]*record.Record
}

// NewBlocker builds one inverted index per predicate over the canonical
// dataset.
func NewBlocker(predicates []Predicate, canonical *record.Dataset) *Blocker {
	indexes := make([]map[string][]*record.Record, len(predicates))
	for i, predicate := range predicates {
		index := make(map[string][]*record.Record)
		for _, rec := range canonical.Records {
			for _, key := range predicate.Keys(rec) {
				index[key] = append(index[key], rec)
			}
		}
		indexes[i] = index
	}
	return &Blocker{predicates: predicates, indexes: indexes}
}

// Predicates returns the predicate set the blocker indexes under.
func (b *Blocker) Predicates() []Predicate {
	out := make([]Predicate, len(b.predicates))
	copy(out, b.predicates)
	return out
}

// Candidates generates the candidate pairs for the messy dataset. The result
// is deterministic: pairs appear in messy file order, and each messy record's
// canonical partners are sorted by identifier with duplicates removed.
func (b *Blocker) Candidates(messy *record.Dataset) []Pair {
	var pairs []Pair
	for _, rec := range messy.Records {
		partners := b.partnersFor(rec)
		for _, canonical := range partners {
			pairs = append(pairs, Pair{Messy: rec, Canonical: canonical})
		}
	}
	return pairs
}

// PairCount reports how many candidate pairs the blocker would generate for
// the messy dataset, without materializing them.
func (b *Blocker) PairCount(messy *record.Dataset) int {
	count := 0
	for _, rec := range messy.Records {
		count += len(b.partnersFor(rec))
	}
	return count
}

func (b *Blocker) partnersFor(rec *record.Record) []*record.Record {
	seen := make(map[string]*record.Record)
	for i, predicate := range b.predicates {
		for _, key := range predicate.Keys(rec) {
			for _, canonical := range b.indexes[i][key] {
				seen[canonical.ID] = canonical
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	partners := make([]*record.Record, len(ids))
	for i, id := range ids {
		partners[i] = seen[id]
	}
	return partners
}

// Sample thins a candidate list down to at most limit pairs using a fixed
// stride, preserving order. Sampling is deterministic for a given input.
func Sample(pairs []Pair, limit int) []Pair {
	if limit <= 0 || len(pairs) <= limit {
		return pairs
	}
	sampled := make([]Pair, 0, limit)
	stride := float64(len(pairs)) / float64(limit)
	for i := 0; i < limit; i++ {
		sampled = append(sampled, pairs[int(float64(i)*stride)])
	}
	return sampled
}
