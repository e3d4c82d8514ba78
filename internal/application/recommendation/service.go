package recommendation

import (
	"context"
	"strings"

	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// defaultTopK matches the serving default the palette endpoint was trained
// and tuned with.
const defaultTopK = 5

// Service implements the recommendation use cases over the two engines. It
// validates commands, maps engine output to DTOs, and makes sure nothing
// internal leaks past the boundary when scoring fails unexpectedly.
type Service struct {
	calorie *CalorieEngine
	palette *PaletteEngine
	logger  *zap.Logger
}

// NewService creates a new recommendation service.
func NewService(calorie *CalorieEngine, palette *PaletteEngine, logger *zap.Logger) inbound.RecommendationService {
	return &Service{
		calorie: calorie,
		palette: palette,
		logger:  logger.Named("recommendation-service"),
	}
}

// RecommendByNutrients finds the recipes nearest to a nutrient profile.
func (s *Service) RecommendByNutrients(ctx context.Context, cmd inbound.NutrientRecommendationCommand) (result []inbound.RecommendationDTO, err error) {
	defer s.recoverScoring(&err)

	query := recommendation.NutrientQuery{
		Calories:    cmd.Calories,
		Fat:         cmd.Fat,
		Carbs:       cmd.Carbs,
		Protein:     cmd.Protein,
		Cholesterol: cmd.Cholesterol,
		Sodium:      cmd.Sodium,
		Fiber:       cmd.Fiber,
		Ingredients: strings.Join(cmd.Ingredients, ","),
	}

	recs, err := s.calorie.Recommend(ctx, query)
	if err != nil {
		s.logger.Error("Nutrient recommendation failed", zap.Error(err))
		return nil, errors.NewInternalError("recommendation failed")
	}
	return toDTOs(recs, false), nil
}

// RecommendByPalette ranks recipes by ingredient and palette similarity.
// Queries that normalize to empty ingredient or palette sets are rejected
// here rather than producing a degenerate all-zero encoding.
func (s *Service) RecommendByPalette(ctx context.Context, cmd inbound.PaletteRecommendationCommand) (result []inbound.RecommendationDTO, err error) {
	defer s.recoverScoring(&err)

	if len(recommendation.NormalizeTags(cmd.Ingredients)) == 0 {
		return nil, errors.NewValidationError(recommendation.ErrEmptyIngredients.Error())
	}
	if len(recommendation.NormalizeTags(cmd.Palette)) == 0 {
		return nil, errors.NewValidationError(recommendation.ErrEmptyPalette.Error())
	}

	topK := cmd.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	recs, err := s.palette.Recommend(ctx, recommendation.PaletteQuery{
		Ingredients: cmd.Ingredients,
		Palette:     cmd.Palette,
		TopK:        topK,
	})
	if err != nil {
		s.logger.Error("Palette recommendation failed", zap.Error(err))
		return nil, errors.NewInternalError("recommendation failed")
	}
	return toDTOs(recs, true), nil
}

// ResetPaletteHistory clears the palette engine's shown-row set.
func (s *Service) ResetPaletteHistory(ctx context.Context) error {
	s.palette.Reset()
	s.logger.Info("Palette recommendation history reset")
	return nil
}

// recoverScoring converts an unexpected panic during scoring into a generic
// internal error. The palette engine only mutates its shown-row set after
// scoring succeeds, so a recovered request has not partially mutated state.
func (s *Service) recoverScoring(err *error) {
	if r := recover(); r != nil {
		s.logger.Error("Recommendation scoring panicked", zap.Any("panic", r))
		*err = errors.NewInternalError("recommendation failed")
	}
}

// toDTOs maps engine output to transport DTOs, preserving order.
func toDTOs(recs []recommendation.Recommendation, withPalette bool) []inbound.RecommendationDTO {
	dtos := make([]inbound.RecommendationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = inbound.RecommendationDTO{
			RecipeName:      rec.Name,
			IngredientsList: rec.Ingredients,
		}
		if withPalette {
			dtos[i].Palette = rec.Palette
		}
	}
	return dtos
}
