package compare

import (
	"math"
	"testing"

	"gazetteer/internal/record"
)

func rec(fields map[string]string) *record.Record {
	return &record.Record{ID: "test:000000", Fields: fields}
}

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "plumbers 5", "plumbers 5", 1},
		{"both empty", "", "", 1},
		{"one empty", "plumbers", "", 0},
		{"single edit", "reno", "rena", 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStringSimilaritySymmetric(t *testing.T) {
	a, b := "carpenters 123", "carpenter 12"
	if StringSimilarity(a, b) != StringSimilarity(b, a) {
		t.Error("StringSimilarity must be symmetric")
	}
}

func TestTokenizeStems(t *testing.T) {
	tokens := Tokenize("carpenters carpenter")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %v", tokens)
	}
	if tokens[0] != tokens[1] {
		t.Errorf("stemming should conflate plural and singular: %v", tokens)
	}
}

func TestTokenizeKeepsNumbers(t *testing.T) {
	tokens := Tokenize("123 afl cio")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", tokens)
	}
	if tokens[0] != "123" {
		t.Errorf("numeric token should survive: %v", tokens)
	}
}

func TestScorerWidthAndNames(t *testing.T) {
	scorer, err := NewScorer(DefaultFields())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	// Six comparators plus missing indicators for city and state.
	if got := scorer.Width(); got != 8 {
		t.Errorf("Width() = %d, want 8", got)
	}
	names := scorer.FeatureNames()
	if len(names) != 8 {
		t.Fatalf("expected 8 feature names, got %d", len(names))
	}
	if names[len(names)-1] != "state(missing)" {
		t.Errorf("last feature should be the state missing indicator, got %s", names[len(names)-1])
	}
}

func TestScoreMatchingPair(t *testing.T) {
	messy := rec(map[string]string{
		record.FieldAbbrName: "123 afl cio",
		record.FieldFullName: "123 afl cio",
		record.FieldCity:     "reno",
		record.FieldState:    "nv",
	})
	canonical := rec(map[string]string{
		record.FieldAbbrName: "123 afl cio",
		record.FieldFullName: "123 afl cio",
		record.FieldCity:     "reno",
		record.FieldState:    "nv",
	})

	scorer, err := NewScorer(DefaultFields())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	features := scorer.Score(messy, canonical)
	if len(features) != scorer.Width() {
		t.Fatalf("feature count %d, want %d", len(features), scorer.Width())
	}
	for i, score := range features[:4] {
		if score != 1 {
			t.Errorf("feature %d = %v, want 1 for identical names", i, score)
		}
	}
	if features[4] != 1 || features[5] != 1 {
		t.Errorf("city/state exact match features = %v %v, want 1 1", features[4], features[5])
	}
	if features[6] != 0 || features[7] != 0 {
		t.Errorf("missing indicators = %v %v, want 0 0", features[6], features[7])
	}
}

func TestScoreMissingField(t *testing.T) {
	messy := rec(map[string]string{
		record.FieldAbbrName: "plumbers 5",
		record.FieldFullName: "plumbers 5",
		record.FieldCity:     "reno",
	})
	canonical := rec(map[string]string{
		record.FieldAbbrName: "plumbers 5",
		record.FieldFullName: "plumbers 5",
		record.FieldCity:     "reno",
		record.FieldState:    "nv",
	})

	scorer, err := NewScorer(DefaultFields())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	features := scorer.Score(messy, canonical)
	if features[5] != missingScore {
		t.Errorf("state score = %v, want sentinel %v", features[5], missingScore)
	}
	// Indicators: city present on both sides, state missing on one.
	if features[6] != 0 {
		t.Errorf("city missing indicator = %v, want 0", features[6])
	}
	if features[7] != 1 {
		t.Errorf("state missing indicator = %v, want 1", features[7])
	}
}

func TestTextComparatorUsesIDF(t *testing.T) {
	// "union" appears in every document, "elevator" in one. A shared rare
	// token should count for more than a shared ubiquitous one.
	datasets := []*record.Dataset{
		{Records: []*record.Record{
			rec(map[string]string{record.FieldFullName: "elevator constructors union"}),
			rec(map[string]string{record.FieldFullName: "plumbers union"}),
			rec(map[string]string{record.FieldFullName: "carpenters union"}),
			rec(map[string]string{record.FieldFullName: "machinists union"}),
		}},
	}
	fields := []Field{{Name: record.FieldFullName, Type: TypeText}}
	scorer, err := NewScorer(fields, datasets...)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}

	shareRare := scorer.Score(
		rec(map[string]string{record.FieldFullName: "elevator constructors union"}),
		rec(map[string]string{record.FieldFullName: "elevator workers"}),
	)[0]
	shareCommon := scorer.Score(
		rec(map[string]string{record.FieldFullName: "elevator constructors union"}),
		rec(map[string]string{record.FieldFullName: "machinists union"}),
	)[0]

	if shareRare <= shareCommon {
		t.Errorf("rare-token overlap %v should outscore common-token overlap %v", shareRare, shareCommon)
	}
}

func TestScorerRoundTripThroughIDF(t *testing.T) {
	datasets := []*record.Dataset{
		{Records: []*record.Record{
			rec(map[string]string{record.FieldFullName: "elevator constructors union"}),
			rec(map[string]string{record.FieldFullName: "plumbers union"}),
		}},
	}
	original, err := NewScorer(DefaultFields(), datasets...)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	reloaded, err := NewScorerWithIDF(original.Fields(), original.IDF())
	if err != nil {
		t.Fatalf("NewScorerWithIDF failed: %v", err)
	}

	a := rec(map[string]string{
		record.FieldAbbrName: "elevator 8",
		record.FieldFullName: "elevator constructors union 8",
		record.FieldCity:     "reno",
	})
	b := rec(map[string]string{
		record.FieldAbbrName: "elevator 8",
		record.FieldFullName: "elevator constructors 8",
		record.FieldState:    "nv",
	})

	first := original.Score(a, b)
	second := reloaded.Score(a, b)
	if len(first) != len(second) {
		t.Fatalf("vector lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("feature %d differs after reload: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestNewScorerRejectsUnknownType(t *testing.T) {
	_, err := NewScorer([]Field{{Name: "x", Type: Type("fuzzy")}})
	if err == nil {
		t.Fatal("expected error for unsupported comparator type")
	}
}
