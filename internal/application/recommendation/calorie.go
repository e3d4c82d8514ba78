// Package recommendation provides the application layer for the two
// recommendation engines: the calorie/nutrient engine and the
// palette/ingredient engine.
package recommendation

import (
	"context"

	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/internal/infrastructure/artifacts"
	"go.uber.org/zap"
)

// CalorieEngine recommends recipes by nutrient-profile proximity. It is
// stateless: every call is independent and idempotent, and the fitted
// artifacts are read-only, so the engine is safe for concurrent use without
// synchronization.
type CalorieEngine struct {
	dataset    *recommendation.Dataset
	vectorizer *artifacts.Vectorizer
	scaler     *artifacts.Scaler
	index      *artifacts.NeighborIndex
	logger     *zap.Logger
}

// NewCalorieEngine creates a calorie engine over a loaded artifact bundle.
func NewCalorieEngine(bundle *artifacts.CalorieBundle, logger *zap.Logger) *CalorieEngine {
	return &CalorieEngine{
		dataset:    bundle.Dataset,
		vectorizer: bundle.Vectorizer,
		scaler:     bundle.Scaler,
		index:      bundle.Index,
		logger:     logger.Named("calorie-engine"),
	}
}

// Recommend returns the K stored recipes nearest to the query under the
// fitted metric, nearest-first. K was fixed at training time. Out-of-range
// nutrient values shift the search rather than fail, and unknown ingredient
// tokens contribute nothing to the encoding.
func (e *CalorieEngine) Recommend(ctx context.Context, query recommendation.NutrientQuery) ([]recommendation.Recommendation, error) {
	features := query.Features()
	scaled, err := e.scaler.Transform(features[:])
	if err != nil {
		return nil, err
	}

	ingredientVec := e.vectorizer.Transform(query.Ingredients)
	combined := append(scaled, ingredientVec.Dense()...)

	indices, distances, err := e.index.Kneighbors(combined)
	if err != nil {
		return nil, err
	}

	results := make([]recommendation.Recommendation, len(indices))
	for i, idx := range indices {
		record := e.dataset.At(idx)
		results[i] = recommendation.Recommendation{
			Index:       idx,
			Name:        record.Name,
			Ingredients: record.Ingredients,
		}
	}

	e.logger.Debug("Nutrient recommendation computed",
		zap.Int("results", len(results)),
		zap.Float64s("distances", distances),
	)
	return results, nil
}
