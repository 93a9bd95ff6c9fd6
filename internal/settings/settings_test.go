package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gazetteer/internal/blocking"
	"gazetteer/internal/compare"
	"gazetteer/internal/learner"
)

func sampleSettings() *Settings {
	return &Settings{
		TrainedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Fields:    compare.DefaultFields(),
		Predicates: []blocking.Predicate{
			{Field: "full_local_name", Kind: blocking.KindToken},
			{Field: "city", Kind: blocking.KindExact},
		},
		PredicateWeights: []float64{0.8, 0.2},
		Model: &learner.Model{
			Weights: []float64{1.25, -0.5, 0.75, 0.1, 0.3, 0.2, -0.05, -0.01},
			Bias:    -2.5,
		},
		IDF: []map[string]float64{
			nil, nil,
			{"elevat": 1.2039728043259361, "union": 0.22314355131420976},
			{"plumber": 0.9162907318741551},
			nil, nil,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	original := sampleSettings()
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Version != Version {
		t.Errorf("version = %d, want %d", loaded.Version, Version)
	}
	if loaded.Model.Bias != original.Model.Bias {
		t.Errorf("bias changed in round trip: %v vs %v", loaded.Model.Bias, original.Model.Bias)
	}
	for i := range original.Model.Weights {
		if loaded.Model.Weights[i] != original.Model.Weights[i] {
			t.Errorf("weight %d changed in round trip", i)
		}
	}
	if loaded.IDF[2]["elevat"] != original.IDF[2]["elevat"] {
		t.Error("IDF weight changed in round trip")
	}
	if len(loaded.Predicates) != 2 || loaded.Predicates[0].Kind != blocking.KindToken {
		t.Errorf("predicates changed in round trip: %+v", loaded.Predicates)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	stale := sampleSettings()
	stale.Version = Version + 1
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("Load() error = %v, want ErrVersionMismatch", err)
	}
}

func TestLoadRejectsMissingModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	empty := sampleSettings()
	empty.Model = nil
	if err := empty.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for settings without a model")
	}
}

func TestAcquireLockExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.lock")

	first, err := AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	defer first.Release()

	if _, err := AcquireLock(path); err == nil {
		t.Error("second AcquireLock should fail while the first is held")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	second, err := AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock after release failed: %v", err)
	}
	second.Release()
}
