package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasteai/v2/internal/domain/recommendation"
	"github.com/tasteai/v2/internal/infrastructure/artifacts"
	"github.com/tasteai/v2/pkg/logger"
)

// newCalorieBundle builds a small fixture: identity scaler, two-token
// vocabulary, three indexed recipes, K=2.
func newCalorieBundle(t *testing.T) *artifacts.CalorieBundle {
	t.Helper()

	vectorizer, err := artifacts.NewVectorizer(map[string]int{"chicken": 0, "rice": 1})
	require.NoError(t, err)

	scaler, err := artifacts.NewScaler(
		[]float64{0, 0, 0, 0, 0, 0, 0},
		[]float64{1, 1, 1, 1, 1, 1, 1},
	)
	require.NoError(t, err)

	// Rows are 7 nutrient features followed by 2 ingredient counts
	points := [][]float64{
		{0, 0, 0, 0, 0, 0, 0, 1, 0},       // chicken dish at origin
		{0, 0, 0, 0, 0, 0, 0, 0, 0},       // bare dish at origin
		{500, 30, 0, 0, 0, 0, 0, 0, 1},    // heavy rice dish
	}
	index, err := artifacts.NewNeighborIndex(2, "euclidean", points)
	require.NoError(t, err)

	dataset := recommendation.NewDataset([]recommendation.RecipeRecord{
		{Name: "Grilled Chicken", Ingredients: "chicken, salt"},
		{Name: "Water Crackers", Ingredients: "flour, water"},
		{Name: "Fried Rice", Ingredients: "rice, oil, egg"},
	})

	return &artifacts.CalorieBundle{
		Dataset:    dataset,
		Vectorizer: vectorizer,
		Scaler:     scaler,
		Index:      index,
	}
}

func TestCalorieEngineRecommend(t *testing.T) {
	engine := NewCalorieEngine(newCalorieBundle(t), logger.NewNop())
	ctx := context.Background()

	t.Run("NearestFirst", func(t *testing.T) {
		recs, err := engine.Recommend(ctx, recommendation.NutrientQuery{
			Ingredients: "chicken",
		})
		require.NoError(t, err)
		require.Len(t, recs, 2)

		assert.Equal(t, "Grilled Chicken", recs[0].Name)
		assert.Equal(t, "Water Crackers", recs[1].Name)
	})

	t.Run("NutrientProfileShiftsResult", func(t *testing.T) {
		recs, err := engine.Recommend(ctx, recommendation.NutrientQuery{
			Calories:    500,
			Fat:         30,
			Ingredients: "rice",
		})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "Fried Rice", recs[0].Name)
	})

	t.Run("Idempotent", func(t *testing.T) {
		query := recommendation.NutrientQuery{Calories: 42, Ingredients: "chicken, rice"}

		first, err := engine.Recommend(ctx, query)
		require.NoError(t, err)
		second, err := engine.Recommend(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("UnknownIngredientsDegrade", func(t *testing.T) {
		recs, err := engine.Recommend(ctx, recommendation.NutrientQuery{
			Ingredients: "dragonfruit, ambrosia",
		})
		require.NoError(t, err)
		// Encodes like an empty ingredient list: nearest is the bare dish
		assert.Equal(t, "Water Crackers", recs[0].Name)
	})

	t.Run("ResultCarriesDatasetRow", func(t *testing.T) {
		recs, err := engine.Recommend(ctx, recommendation.NutrientQuery{Ingredients: "chicken"})
		require.NoError(t, err)
		assert.Equal(t, 0, recs[0].Index)
		assert.Equal(t, "chicken, salt", recs[0].Ingredients)
	})
}
