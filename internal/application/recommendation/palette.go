package recommendation

import (
	"context"
	"sort"
	"sync"

	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/internal/infrastructure/artifacts"
	"go.uber.org/zap"
)

// PaletteEngine recommends recipes by combined ingredient and palette
// similarity. Unlike the calorie engine it is stateful: dataset rows returned
// once are excluded from every later call until Reset, so repeated identical
// queries yield progressively different results.
//
// The shown-row set is the engine's only mutable state. Filtering, selection,
// and recording of shown rows form one critical section per request; without
// that, two concurrent requests could select the same "new" row from the same
// stale snapshot. Mutation covers exactly the rows actually returned, never
// candidates considered and discarded, and nothing is recorded when a request
// fails before selection.
type PaletteEngine struct {
	dataset    *recommendation.Dataset
	vectorizer *artifacts.Vectorizer
	binarizer  *artifacts.Binarizer
	matrix     *artifacts.CSRMatrix
	logger     *zap.Logger

	mu    sync.Mutex
	shown map[int]struct{}
}

// NewPaletteEngine creates a palette engine over a loaded artifact bundle
// with an empty shown-row set.
func NewPaletteEngine(bundle *artifacts.PaletteBundle, logger *zap.Logger) *PaletteEngine {
	return &PaletteEngine{
		dataset:    bundle.Dataset,
		vectorizer: bundle.Vectorizer,
		binarizer:  bundle.Binarizer,
		matrix:     bundle.Matrix,
		logger:     logger.Named("palette-engine"),
		shown:      make(map[int]struct{}),
	}
}

// Recommend ranks all stored recipes by cosine similarity to the query,
// drops rows shown by earlier calls, selects the top K survivors, and
// returns them re-ordered by ingredient-overlap score. Similarity gates
// candidacy; match score governs the final order.
func (e *PaletteEngine) Recommend(ctx context.Context, query recommendation.PaletteQuery) ([]recommendation.Recommendation, error) {
	if query.TopK <= 0 {
		return nil, recommendation.ErrInvalidTopK
	}

	// Encoding must match the training-time canonicalization exactly: the
	// ingredient vectorizer is case- and order-sensitive otherwise.
	canonical := recommendation.CanonicalIngredients(query.Ingredients)
	ingredientVec := e.vectorizer.Transform(canonical)
	paletteVec := e.binarizer.Transform(recommendation.NormalizeTags(query.Palette))
	combined := artifacts.HStack(ingredientVec, paletteVec)

	sims, err := e.matrix.CosineSimilarities(combined)
	if err != nil {
		return nil, err
	}

	// Similarity descending; ties keep the lower row index first.
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	// Match score over the full dataset, from the raw (un-sorted) query set.
	querySet := recommendation.TokenSet(query.Ingredients)
	matchScores := make([]int, e.dataset.Len())
	for i := 0; i < e.dataset.Len(); i++ {
		matchScores[i] = recommendation.MatchScore(querySet, e.dataset.At(i).Ingredients)
	}

	// Critical section: filter against shown rows, select, record.
	e.mu.Lock()
	selected := make([]int, 0, query.TopK)
	for _, idx := range order {
		if _, seen := e.shown[idx]; seen {
			continue
		}
		selected = append(selected, idx)
		if len(selected) == query.TopK {
			break
		}
	}
	for _, idx := range selected {
		e.shown[idx] = struct{}{}
	}
	shownTotal := len(e.shown)
	e.mu.Unlock()

	// Secondary sort: match score descending, stable over similarity order.
	sort.SliceStable(selected, func(a, b int) bool {
		return matchScores[selected[a]] > matchScores[selected[b]]
	})

	results := make([]recommendation.Recommendation, len(selected))
	for i, idx := range selected {
		record := e.dataset.At(idx)
		results[i] = recommendation.Recommendation{
			Index:       idx,
			Name:        record.Name,
			Ingredients: record.Ingredients,
			Palette:     record.Palette,
		}
	}

	e.logger.Debug("Palette recommendation computed",
		zap.Int("results", len(results)),
		zap.Int("shown_total", shownTotal),
	)
	return results, nil
}

// Reset clears the shown-row set, restoring the full candidate pool.
func (e *PaletteEngine) Reset() {
	e.mu.Lock()
	e.shown = make(map[int]struct{})
	e.mu.Unlock()
}

// ShownCount reports how many dataset rows have been returned so far.
func (e *PaletteEngine) ShownCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.shown)
}
