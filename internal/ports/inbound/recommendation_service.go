// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import "context"

// RecommendationService defines the recommendation use cases. The HTTP layer
// is responsible for request shape validation (list-shaped fields, numeric
// defaults) before building the commands below.
type RecommendationService interface {
	// RecommendByNutrients finds the recipes nearest to a nutrient profile.
	// Idempotent: identical commands always yield identical ordered output.
	RecommendByNutrients(ctx context.Context, cmd NutrientRecommendationCommand) ([]RecommendationDTO, error)

	// RecommendByPalette ranks recipes by ingredient and palette similarity,
	// excluding rows already returned by earlier calls on this process.
	RecommendByPalette(ctx context.Context, cmd PaletteRecommendationCommand) ([]RecommendationDTO, error)

	// ResetPaletteHistory clears the set of already-shown recipes.
	ResetPaletteHistory(ctx context.Context) error
}

// NutrientRecommendationCommand carries the calorie engine query. Missing
// numeric fields default to zero.
type NutrientRecommendationCommand struct {
	Calories    float64
	Fat         float64
	Carbs       float64
	Protein     float64
	Cholesterol float64
	Sodium      float64
	Fiber       float64
	Ingredients []string
}

// PaletteRecommendationCommand carries the palette engine query.
type PaletteRecommendationCommand struct {
	Ingredients []string
	Palette     []string
	TopK        int
}

// RecommendationDTO is one ranked recommendation. Palette is only populated
// by the palette engine.
type RecommendationDTO struct {
	RecipeName      string `json:"recipe_name"`
	IngredientsList string `json:"ingredients_list"`
	Palette         string `json:"palette,omitempty"`
}
