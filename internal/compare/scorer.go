package compare

import (
	"fmt"

	"gazetteer/internal/record"
)

// Type selects the comparator used for a field.
type Type string

const (
	// TypeShortString compares whole values by normalized edit distance.
	TypeShortString Type = "short_string"
	// TypeText compares TF-IDF weighted token vectors by cosine similarity.
	TypeText Type = "text"
	// TypeString compares values for exact equality.
	TypeString Type = "string"
)

// missingScore is the sentinel feature value recorded when either side of a
// pair lacks the field. Fields with HasMissing additionally emit an indicator
// feature so the classifier can weigh absence separately from disagreement.
const missingScore = 0.0

// Field configures one comparator in the feature vector.
type Field struct {
	Name       string `json:"name"`
	Type       Type   `json:"type"`
	HasMissing bool   `json:"has_missing,omitempty"`
}

// DefaultFields is the comparator configuration for union local linking:
// names enter twice, once for edit distance and once for corpus-weighted
// token overlap, while city and state are exact-match fields that may be
// absent on either side.
func DefaultFields() []Field {
	return []Field{
		{Name: record.FieldAbbrName, Type: TypeShortString},
		{Name: record.FieldFullName, Type: TypeShortString},
		{Name: record.FieldAbbrName, Type: TypeText},
		{Name: record.FieldFullName, Type: TypeText},
		{Name: record.FieldCity, Type: TypeString, HasMissing: true},
		{Name: record.FieldState, Type: TypeString, HasMissing: true},
	}
}

// Scorer computes feature vectors for candidate pairs. A Scorer is immutable
// after construction, so concurrent Score calls are safe.
type Scorer struct {
	fields []Field
	idf    []map[string]float64
}

// NewScorer builds a scorer for the given fields, deriving IDF weights for
// text fields from every dataset passed as corpus material.
func NewScorer(fields []Field, corpora ...*record.Dataset) (*Scorer, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	idf := make([]map[string]float64, len(fields))
	for i, field := range fields {
		if field.Type != TypeText {
			continue
		}
		corpus := NewCorpus()
		for _, dataset := range corpora {
			for _, rec := range dataset.Records {
				if value, ok := rec.Field(field.Name); ok {
					corpus.Add(NewFingerprint(value))
				}
			}
		}
		idf[i] = corpus.IDF()
	}
	return &Scorer{fields: cloneFields(fields), idf: idf}, nil
}

// NewScorerWithIDF reconstructs a scorer from persisted field configuration
// and IDF tables, reproducing the exact scoring behavior of the scorer that
// was serialized.
func NewScorerWithIDF(fields []Field, idf []map[string]float64) (*Scorer, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	if len(idf) != len(fields) {
		return nil, fmt.Errorf("idf table count %d does not match field count %d", len(idf), len(fields))
	}
	return &Scorer{fields: cloneFields(fields), idf: idf}, nil
}

// Fields returns the comparator configuration.
func (s *Scorer) Fields() []Field {
	return cloneFields(s.fields)
}

// IDF returns the per-field IDF tables for persistence. Entries are nil for
// non-text fields.
func (s *Scorer) IDF() []map[string]float64 {
	return s.idf
}

// Width returns the feature vector length: one score per field plus one
// missing indicator per has-missing field.
func (s *Scorer) Width() int {
	width := len(s.fields)
	for _, field := range s.fields {
		if field.HasMissing {
			width++
		}
	}
	return width
}

// FeatureNames labels each feature vector position, in order.
func (s *Scorer) FeatureNames() []string {
	names := make([]string, 0, s.Width())
	for _, field := range s.fields {
		names = append(names, fmt.Sprintf("%s(%s)", field.Name, field.Type))
	}
	for _, field := range s.fields {
		if field.HasMissing {
			names = append(names, fmt.Sprintf("%s(missing)", field.Name))
		}
	}
	return names
}

// Score computes the feature vector for a candidate pair. Vectors are
// immutable once returned; missing values contribute the sentinel score and,
// for has-missing fields, a raised indicator.
func (s *Scorer) Score(a, b *record.Record) []float64 {
	features := make([]float64, 0, s.Width())
	missing := make([]float64, 0, 2)

	for i, field := range s.fields {
		left, leftOK := a.Field(field.Name)
		right, rightOK := b.Field(field.Name)

		if !leftOK || !rightOK {
			features = append(features, missingScore)
			if field.HasMissing {
				missing = append(missing, 1)
			}
			continue
		}

		var score float64
		switch field.Type {
		case TypeShortString:
			score = StringSimilarity(left, right)
		case TypeText:
			fa := NewFingerprint(left).WithIDF(s.idf[i])
			fb := NewFingerprint(right).WithIDF(s.idf[i])
			score = CosineSimilarity(fa, fb)
		case TypeString:
			if left == right {
				score = 1
			}
		}
		features = append(features, score)
		if field.HasMissing {
			missing = append(missing, 0)
		}
	}

	return append(features, missing...)
}

func validateFields(fields []Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("at least one comparator field is required")
	}
	for _, field := range fields {
		switch field.Type {
		case TypeShortString, TypeText, TypeString:
		default:
			return fmt.Errorf("field %s: unsupported comparator type %q", field.Name, field.Type)
		}
	}
	return nil
}

func cloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
