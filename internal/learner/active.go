package learner

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gazetteer/internal/blocking"
	"gazetteer/internal/compare"
	"gazetteer/internal/logging"
)

// Oracle supplies ground-truth labels during active learning. Ask blocks
// until the label source answers; done reports that the source wants to stop
// labeling and proceed with what was collected.
type Oracle interface {
	Ask(pair blocking.Pair) (label Label, done bool, err error)
}

// ReplayOracle answers from a fixed script, then signals completion. It
// backs file-replay sessions and tests.
type ReplayOracle struct {
	Labels []Label
	next   int
}

// Ask returns the next scripted label, or done once the script is exhausted.
func (o *ReplayOracle) Ask(blocking.Pair) (Label, bool, error) {
	if o.next >= len(o.Labels) {
		return "", true, nil
	}
	label := o.Labels[o.next]
	o.next++
	return label, false, nil
}

// Collect runs the active-learning loop: it repeatedly selects the unlabeled
// candidate with the highest classification uncertainty, suspends on the
// oracle for a label, and folds the answer into the working set. The loop
// ends when the oracle signals completion, the labeling budget is exhausted,
// the candidates run out, or ctx is cancelled. It returns the existing
// examples plus everything newly labeled.
func Collect(
	ctx context.Context,
	scorer *compare.Scorer,
	candidates []blocking.Pair,
	existing []Example,
	oracle Oracle,
	budget int,
	logger *slog.Logger,
) ([]Example, error) {
	examples := append([]Example(nil), existing...)
	labeled := make(map[string]struct{}, len(examples))
	for _, example := range examples {
		labeled[example.Pair.Key()] = struct{}{}
	}

	type scored struct {
		pair     blocking.Pair
		features []float64
	}
	pool := make([]scored, 0, len(candidates))
	for _, pair := range candidates {
		if _, done := labeled[pair.Key()]; done {
			continue
		}
		pool = append(pool, scored{pair: pair, features: scorer.Score(pair.Messy, pair.Canonical)})
	}

	asked := 0
	for len(pool) > 0 {
		if err := ctx.Err(); err != nil {
			return examples, err
		}
		if budget > 0 && asked >= budget {
			logger.Info("labeling budget exhausted", logging.Int("labels", asked))
			break
		}

		model := interimModel(examples, scorer.Width())
		best, bestUncertainty := -1, math.Inf(1)
		for i, cand := range pool {
			p := probability(model, cand.features)
			if uncertainty := math.Abs(p - 0.5); uncertainty < bestUncertainty {
				best, bestUncertainty = i, uncertainty
			}
		}

		pick := pool[best]
		label, done, err := oracle.Ask(pick.pair)
		if err != nil {
			return examples, fmt.Errorf("labeling oracle: %w", err)
		}
		if done {
			logger.Info("labeling finished by oracle", logging.Int("labels", asked))
			break
		}

		examples = append(examples, Example{Pair: pick.pair, Features: pick.features, Label: label})
		labeled[pick.pair.Key()] = struct{}{}
		pool = append(pool[:best], pool[best+1:]...)
		asked++

		logger.Debug("pair labeled",
			logging.String("pair", pick.pair.Key()),
			logging.String("label", string(label)),
			logging.Int("total", len(examples)))
	}

	return examples, nil
}

// interimModel trains on what has been labeled so far. Before both classes
// exist no model can be fit; selection then falls back to the raw feature
// mean, which still surfaces ambiguous pairs first.
func interimModel(examples []Example, width int) *Model {
	model, err := Train(examples, width)
	if err != nil {
		return nil
	}
	return model
}

func probability(model *Model, features []float64) float64 {
	if model != nil {
		return model.Predict(features)
	}
	if len(features) == 0 {
		return 0
	}
	var sum float64
	for _, feature := range features {
		sum += feature
	}
	return sum / float64(len(features))
}
