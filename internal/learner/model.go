package learner

import (
	"errors"
	"fmt"
	"math"

	"gazetteer/internal/blocking"
)

// Label is a ground-truth judgement for a candidate pair.
type Label string

const (
	LabelMatch     Label = "match"
	LabelDistinct  Label = "distinct"
	LabelUncertain Label = "uncertain"
)

// ParseLabel validates a stored label value.
func ParseLabel(value string) (Label, error) {
	switch Label(value) {
	case LabelMatch, LabelDistinct, LabelUncertain:
		return Label(value), nil
	default:
		return "", fmt.Errorf("unknown label %q", value)
	}
}

// Example is a labeled candidate pair with its feature vector.
type Example struct {
	Pair     blocking.Pair
	Features []float64
	Label    Label
}

// ErrInsufficientLabels signals that training cannot proceed because the
// labeled data lacks matches, distinct pairs, or both.
var ErrInsufficientLabels = errors.New("training requires at least one match and one distinct label")

// Training hyperparameters. Fixed so retraining on identical examples is
// reproducible.
const (
	trainIterations = 500
	learningRate    = 0.5
	l2Penalty       = 0.001
)

// Model is a trained logistic regression over pairwise feature vectors.
type Model struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Train fits a model on the labeled examples. Uncertain labels are ignored.
// width is the expected feature vector length.
func Train(examples []Example, width int) (*Model, error) {
	var usable []Example
	matches, distincts := 0, 0
	for _, example := range examples {
		switch example.Label {
		case LabelMatch:
			matches++
		case LabelDistinct:
			distincts++
		default:
			continue
		}
		if len(example.Features) != width {
			return nil, fmt.Errorf("example %s: feature width %d, want %d",
				example.Pair.Key(), len(example.Features), width)
		}
		usable = append(usable, example)
	}
	if matches == 0 || distincts == 0 {
		return nil, fmt.Errorf("%w (have %d matches, %d distinct)", ErrInsufficientLabels, matches, distincts)
	}

	model := &Model{Weights: make([]float64, width)}
	n := float64(len(usable))

	for iter := 0; iter < trainIterations; iter++ {
		gradW := make([]float64, width)
		gradB := 0.0
		for _, example := range usable {
			target := 0.0
			if example.Label == LabelMatch {
				target = 1.0
			}
			delta := model.Predict(example.Features) - target
			for i, feature := range example.Features {
				gradW[i] += delta * feature
			}
			gradB += delta
		}
		for i := range model.Weights {
			model.Weights[i] -= learningRate * (gradW[i]/n + l2Penalty*model.Weights[i])
		}
		model.Bias -= learningRate * gradB / n
	}

	return model, nil
}

// Predict returns the match probability for a feature vector.
func (m *Model) Predict(features []float64) float64 {
	score := m.Bias
	for i, weight := range m.Weights {
		if i < len(features) {
			score += weight * features[i]
		}
	}
	return 1 / (1 + math.Exp(-score))
}
