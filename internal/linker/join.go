package linker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gazetteer/internal/blocking"
	"gazetteer/internal/cluster"
	"gazetteer/internal/compare"
	"gazetteer/internal/logging"
	"gazetteer/internal/record"
	"gazetteer/internal/settings"
)

// LinkReport summarizes a completed linking run.
type LinkReport struct {
	MessyRecords     int
	CandidatePairs   int
	Linked           int
	CanonicalMatched int
	OutputPath       string
}

// Link joins the messy CSV at messyPath against the canonical gazetteer
// using the trained settings, and writes the annotated copy to outputPath.
// Each messy row links to at most one canonical record; rows scoring at or
// below the cutoff stay unmatched.
func (e *Engine) Link(ctx context.Context, messyPath, outputPath string) (*LinkReport, error) {
	lock, err := e.acquireLock()
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	st, err := settings.Load(e.cfg.SettingsPath())
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return nil, fmt.Errorf("%w; run \"gazetteer label\" first", err)
		}
		return nil, err
	}
	scorer, err := compare.NewScorerWithIDF(st.Fields, st.IDF)
	if err != nil {
		return nil, err
	}

	canonical, messy, err := e.loadDatasets(messyPath)
	if err != nil {
		return nil, err
	}

	blocker := blocking.NewBlocker(st.Predicates, canonical)
	candidates := blocker.Candidates(messy)
	e.logger.Info("candidates generated",
		logging.Int("pairs", len(candidates)),
		logging.Int("predicates", len(st.Predicates)))

	scored, err := e.scorePairs(ctx, scorer, st, candidates)
	if err != nil {
		return nil, err
	}

	assignments := cluster.Resolve(scored, e.cfg.Linker.Cutoff)

	links := make(map[string]record.Link, len(assignments))
	canonicalSeen := make(map[string]struct{}, len(assignments))
	for _, assignment := range assignments {
		canonRec := canonical.Get(assignment.CanonicalID)
		if canonRec == nil {
			return nil, fmt.Errorf("assignment references unknown canonical record %s", assignment.CanonicalID)
		}
		links[assignment.MessyID] = record.Link{
			CanonID: canonRec.Raw[record.FieldFNum],
			Score:   assignment.Score,
		}
		canonicalSeen[assignment.CanonicalID] = struct{}{}
	}

	if err := record.WriteLinked(outputPath, messyPath, links); err != nil {
		return nil, err
	}

	report := &LinkReport{
		MessyRecords:     messy.Len(),
		CandidatePairs:   len(candidates),
		Linked:           len(assignments),
		CanonicalMatched: len(canonicalSeen),
		OutputPath:       outputPath,
	}
	e.logger.Info("linking complete",
		logging.Int("messy_records", report.MessyRecords),
		logging.Int("linked", report.Linked),
		logging.Int("canonical_matched", report.CanonicalMatched),
		logging.String("output", outputPath))
	return report, nil
}

// scorePairs classifies candidate pairs concurrently. Results keep candidate
// order so downstream resolution stays deterministic.
func (e *Engine) scorePairs(
	ctx context.Context,
	scorer *compare.Scorer,
	st *settings.Settings,
	candidates []blocking.Pair,
) ([]cluster.ScoredPair, error) {
	workers := e.cfg.Linker.ScoreWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	scored := make([]cluster.ScoredPair, len(candidates))
	if workers <= 1 {
		for i, pair := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = cluster.ScoredPair{
				Pair:        pair,
				Probability: st.Model.Predict(scorer.Score(pair.Messy, pair.Canonical)),
			}
		}
		return scored, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				pair := candidates[i]
				scored[i] = cluster.ScoredPair{
					Pair:        pair,
					Probability: st.Model.Predict(scorer.Score(pair.Messy, pair.Canonical)),
				}
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scored, nil
}
