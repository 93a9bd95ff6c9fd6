package cluster

import (
	"testing"

	"gazetteer/internal/blocking"
	"gazetteer/internal/record"
)

func scoredPair(messyRow, canonicalRow int, probability float64) ScoredPair {
	return ScoredPair{
		Pair: blocking.Pair{
			Messy:     &record.Record{ID: record.RecordID("messy.csv", messyRow), Row: messyRow},
			Canonical: &record.Record{ID: record.RecordID("canonical.csv", canonicalRow), Row: canonicalRow},
		},
		Probability: probability,
	}
}

func TestResolvePicksBestCanonical(t *testing.T) {
	pairs := []ScoredPair{
		scoredPair(0, 3, 0.4),
		scoredPair(0, 1, 0.9),
		scoredPair(0, 2, 0.7),
	}

	assignments := Resolve(pairs, 0.2)
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].CanonicalID != record.RecordID("canonical.csv", 1) {
		t.Errorf("assigned %s, want the 0.9 partner", assignments[0].CanonicalID)
	}
	if assignments[0].Score != 0.9 {
		t.Errorf("score = %v, want 0.9", assignments[0].Score)
	}
}

func TestResolveManyToOne(t *testing.T) {
	// Two messy records both prefer the same canonical anchor, and each
	// also scores against another canonical record.
	pairs := []ScoredPair{
		scoredPair(0, 5, 0.95),
		scoredPair(0, 6, 0.60),
		scoredPair(1, 5, 0.90),
		scoredPair(1, 7, 0.55),
	}

	assignments := Resolve(pairs, 0.5)
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}

	// No messy record may appear twice; the canonical anchor may.
	seen := map[string]struct{}{}
	for _, assignment := range assignments {
		if _, dup := seen[assignment.MessyID]; dup {
			t.Fatalf("messy record %s assigned twice", assignment.MessyID)
		}
		seen[assignment.MessyID] = struct{}{}
		if assignment.CanonicalID != record.RecordID("canonical.csv", 5) {
			t.Errorf("messy %s should anchor on canonical 5, got %s", assignment.MessyID, assignment.CanonicalID)
		}
	}
}

func TestResolveCutoffExcludes(t *testing.T) {
	pairs := []ScoredPair{
		scoredPair(0, 1, 0.3),
		scoredPair(1, 1, 0.8),
	}

	assignments := Resolve(pairs, 0.5)
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].MessyID != record.RecordID("messy.csv", 1) {
		t.Errorf("wrong messy record linked: %s", assignments[0].MessyID)
	}
}

func TestResolveScoreAtCutoffExcluded(t *testing.T) {
	pairs := []ScoredPair{scoredPair(0, 1, 0.5)}
	if got := Resolve(pairs, 0.5); len(got) != 0 {
		t.Errorf("probability equal to cutoff must not link, got %d assignments", len(got))
	}
}

func TestResolveTieBreaksToLowestCanonicalID(t *testing.T) {
	pairs := []ScoredPair{
		scoredPair(0, 9, 0.8),
		scoredPair(0, 2, 0.8),
		scoredPair(0, 4, 0.8),
	}

	for run := 0; run < 5; run++ {
		assignments := Resolve(append([]ScoredPair(nil), pairs...), 0.1)
		if len(assignments) != 1 {
			t.Fatalf("expected 1 assignment, got %d", len(assignments))
		}
		if assignments[0].CanonicalID != record.RecordID("canonical.csv", 2) {
			t.Fatalf("run %d: tie resolved to %s, want lowest canonical id", run, assignments[0].CanonicalID)
		}
	}
}

func TestResolveOrderedByMessyPosition(t *testing.T) {
	pairs := []ScoredPair{
		scoredPair(2, 0, 0.9),
		scoredPair(0, 0, 0.9),
		scoredPair(1, 0, 0.9),
	}

	assignments := Resolve(pairs, 0.1)
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	for i := 1; i < len(assignments); i++ {
		if assignments[i-1].MessyID >= assignments[i].MessyID {
			t.Errorf("assignments out of messy order: %s before %s", assignments[i-1].MessyID, assignments[i].MessyID)
		}
	}
}
