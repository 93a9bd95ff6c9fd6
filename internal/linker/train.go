package linker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gazetteer/internal/blocking"
	"gazetteer/internal/compare"
	"gazetteer/internal/learner"
	"gazetteer/internal/logging"
	"gazetteer/internal/record"
	"gazetteer/internal/settings"
	"gazetteer/internal/training"
)

// TrainReport summarizes a completed labeling and training run.
type TrainReport struct {
	SessionID    string
	NewLabels    int
	Matches      int
	Distinct     int
	Uncertain    int
	Predicates   []string
	Covered      int
	Positives    int
	SettingsPath string
}

// Train runs a labeling session against the provided oracle, fits the
// pairwise classifier on everything labeled so far, selects blocking
// predicates covering the labeled matches, and persists the result. Stored
// labels from earlier sessions are replayed into the training set first, so
// repeated sessions refine rather than restart.
func (e *Engine) Train(ctx context.Context, messyPath string, oracle learner.Oracle) (*TrainReport, error) {
	lock, err := e.acquireLock()
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	canonical, messy, err := e.loadDatasets(messyPath)
	if err != nil {
		return nil, err
	}
	scorer, err := newScorer(canonical, messy)
	if err != nil {
		return nil, err
	}

	store, err := training.Open(e.cfg.TrainingDBPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	existing, err := e.replayStored(ctx, store, scorer, canonical, messy)
	if err != nil {
		return nil, err
	}

	predicates := blocking.AllPredicates(scorer.Fields())
	blocker := blocking.NewBlocker(predicates, canonical)
	candidates := blocking.Sample(blocker.Candidates(messy), e.cfg.Linker.SampleSize)
	e.logger.Info("labeling pool prepared",
		logging.Int("candidates", len(candidates)),
		logging.Int("replayed_labels", len(existing)))

	examples, err := learner.Collect(ctx, scorer, candidates, existing, oracle, e.cfg.Linker.LabelingBudget, e.logger)
	if err != nil {
		return nil, err
	}
	fresh := examples[len(existing):]

	model, err := learner.Train(examples, scorer.Width())
	if err != nil {
		if errors.Is(err, learner.ErrInsufficientLabels) && len(fresh) > 0 {
			// Keep the labels even when they cannot train a model yet.
			if saveErr := store.SaveSession(ctx, uuid.NewString(), fresh); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, err
	}

	positives := make([]blocking.Pair, 0, len(examples))
	for _, example := range examples {
		if example.Label == learner.LabelMatch {
			positives = append(positives, example.Pair)
		}
	}
	selection := blocking.SelectPredicates(predicates, positives, messy, canonical, e.predicateBudget(canonical, messy))
	if !selection.FullCoverage() {
		e.logger.Warn("blocking predicates cover only part of the labeled matches",
			logging.Int("covered", selection.Covered),
			logging.Int("positives", selection.Positives))
	}
	if len(selection.Predicates) == 0 {
		return nil, fmt.Errorf("no blocking predicate covers any labeled match; label more pairs")
	}

	sessionID := uuid.NewString()
	if len(fresh) > 0 {
		if err := store.SaveSession(ctx, sessionID, fresh); err != nil {
			return nil, err
		}
	}

	st := &settings.Settings{
		Version:          settings.Version,
		TrainedAt:        time.Now().UTC(),
		Fields:           scorer.Fields(),
		Predicates:       selection.Predicates,
		PredicateWeights: selection.Weights,
		Model:            model,
		IDF:              scorer.IDF(),
	}
	if err := st.Save(e.cfg.SettingsPath()); err != nil {
		return nil, err
	}

	report := &TrainReport{
		SessionID:    sessionID,
		NewLabels:    len(fresh),
		Covered:      selection.Covered,
		Positives:    selection.Positives,
		SettingsPath: e.cfg.SettingsPath(),
	}
	for _, example := range examples {
		switch example.Label {
		case learner.LabelMatch:
			report.Matches++
		case learner.LabelDistinct:
			report.Distinct++
		case learner.LabelUncertain:
			report.Uncertain++
		}
	}
	for _, predicate := range selection.Predicates {
		report.Predicates = append(report.Predicates, predicate.String())
	}
	e.logger.Info("training complete",
		logging.Int("labels", len(examples)),
		logging.Int("predicates", len(selection.Predicates)),
		logging.String("settings", e.cfg.SettingsPath()))
	return report, nil
}

// replayStored turns previously saved labels back into training examples.
// Labels whose records are absent from the current datasets are skipped.
func (e *Engine) replayStored(
	ctx context.Context,
	store *training.Store,
	scorer *compare.Scorer,
	canonical, messy *record.Dataset,
) ([]learner.Example, error) {
	stored, err := store.All(ctx)
	if err != nil {
		return nil, err
	}
	examples := make([]learner.Example, 0, len(stored))
	skipped := 0
	for _, labeled := range stored {
		messyRec := messy.Get(labeled.MessyID)
		canonRec := canonical.Get(labeled.CanonicalID)
		if messyRec == nil || canonRec == nil {
			skipped++
			continue
		}
		examples = append(examples, learner.Example{
			Pair:     blocking.Pair{Messy: messyRec, Canonical: canonRec},
			Features: scorer.Score(messyRec, canonRec),
			Label:    labeled.Label,
		})
	}
	if skipped > 0 {
		e.logger.Debug("stored labels skipped for records missing from current inputs",
			logging.Int("skipped", skipped))
	}
	return examples, nil
}
