package training

import (
	"context"
	"path/filepath"
	"testing"

	"gazetteer/internal/blocking"
	"gazetteer/internal/learner"
	"gazetteer/internal/record"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "training.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func exampleFor(row int, label learner.Label) learner.Example {
	return learner.Example{
		Pair: blocking.Pair{
			Messy:     &record.Record{ID: record.RecordID("messy.csv", row), Row: row},
			Canonical: &record.Record{ID: record.RecordID("canonical.csv", row), Row: row},
		},
		Label: label,
	}
}

func TestSaveSessionAndReload(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	session := []learner.Example{
		exampleFor(0, learner.LabelMatch),
		exampleFor(1, learner.LabelDistinct),
		exampleFor(2, learner.LabelUncertain),
	}
	if err := store.SaveSession(ctx, "session-1", session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	pairs, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	// Collection order survives the round trip.
	for i, want := range []learner.Label{learner.LabelMatch, learner.LabelDistinct, learner.LabelUncertain} {
		if pairs[i].Label != want {
			t.Errorf("pair %d label = %s, want %s", i, pairs[i].Label, want)
		}
	}
	if pairs[0].MessyID != record.RecordID("messy.csv", 0) {
		t.Errorf("unexpected messy id %q", pairs[0].MessyID)
	}
}

func TestSessionsAccumulate(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.SaveSession(ctx, "session-1", []learner.Example{exampleFor(0, learner.LabelMatch)}); err != nil {
		t.Fatalf("first session: %v", err)
	}
	if err := store.SaveSession(ctx, "session-2", []learner.Example{exampleFor(1, learner.LabelDistinct)}); err != nil {
		t.Fatalf("second session: %v", err)
	}

	matches, distinct, uncertain, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if matches != 1 || distinct != 1 || uncertain != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0", matches, distinct, uncertain)
	}
}

func TestRelabelReplacesJudgement(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.SaveSession(ctx, "session-1", []learner.Example{exampleFor(0, learner.LabelMatch)}); err != nil {
		t.Fatalf("first session: %v", err)
	}
	if err := store.SaveSession(ctx, "session-2", []learner.Example{exampleFor(0, learner.LabelDistinct)}); err != nil {
		t.Fatalf("second session: %v", err)
	}

	pairs, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected a single pair after relabel, got %d", len(pairs))
	}
	if pairs[0].Label != learner.LabelDistinct {
		t.Errorf("label = %s, want distinct", pairs[0].Label)
	}
	if pairs[0].SessionID != "session-2" {
		t.Errorf("session = %s, want session-2", pairs[0].SessionID)
	}
}

func TestReopenExistingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.SaveSession(ctx, "session-1", []learner.Example{exampleFor(0, learner.LabelMatch)}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	pairs, err := second.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(pairs) != 1 {
		t.Errorf("expected persisted pair after reopen, got %d", len(pairs))
	}
}

func TestSaveSessionEmpty(t *testing.T) {
	store := openStore(t)
	if err := store.SaveSession(context.Background(), "session-1", nil); err != nil {
		t.Errorf("empty session should be a no-op, got %v", err)
	}
}
