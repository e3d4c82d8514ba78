package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/pkg/logger"
)

// stubRecommender records the last command and returns canned results
type stubRecommender struct {
	nutrientCmd *inbound.NutrientRecommendationCommand
	paletteCmd  *inbound.PaletteRecommendationCommand
	results     []inbound.RecommendationDTO
	resetCalled bool
}

func (s *stubRecommender) RecommendByNutrients(ctx context.Context, cmd inbound.NutrientRecommendationCommand) ([]inbound.RecommendationDTO, error) {
	s.nutrientCmd = &cmd
	return s.results, nil
}

func (s *stubRecommender) RecommendByPalette(ctx context.Context, cmd inbound.PaletteRecommendationCommand) ([]inbound.RecommendationDTO, error) {
	s.paletteCmd = &cmd
	return s.results, nil
}

func (s *stubRecommender) ResetPaletteHistory(ctx context.Context) error {
	s.resetCalled = true
	return nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRecommendByNutrients(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		stub := &stubRecommender{results: []inbound.RecommendationDTO{
			{RecipeName: "Grilled Chicken", IngredientsList: "chicken, salt"},
		}}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByNutrients,
			`{"calories": 400, "fat": 10, "ingredients": ["chicken", "rice"]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.nutrientCmd)
		assert.Equal(t, 400.0, stub.nutrientCmd.Calories)
		assert.Equal(t, []string{"chicken", "rice"}, stub.nutrientCmd.Ingredients)

		var resp APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("MissingNumericFieldsDefaultToZero", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByNutrients, `{"ingredients": ["rice"]}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.nutrientCmd)
		assert.Zero(t, stub.nutrientCmd.Calories)
		assert.Zero(t, stub.nutrientCmd.Fiber)
	})

	t.Run("ScalarIngredientsRejected", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByNutrients,
			`{"calories": 400, "ingredients": "chicken"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, stub.nutrientCmd)
		assert.Contains(t, rec.Body.String(), "ingredients must be a list")
	})

	t.Run("MissingIngredientsRejected", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByNutrients, `{"calories": 400}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedJSONRejected", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByNutrients, `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRecommendByPalette(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		stub := &stubRecommender{results: []inbound.RecommendationDTO{
			{RecipeName: "Tomato Soup", IngredientsList: "tomato, basil", Palette: "savory"},
		}}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByPalette,
			`{"ingredients": ["tomato"], "palette": ["savory"], "top_k": 3}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, stub.paletteCmd)
		assert.Equal(t, 3, stub.paletteCmd.TopK)
		assert.Contains(t, rec.Body.String(), `"palette":"savory"`)
	})

	t.Run("ScalarPaletteRejected", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByPalette,
			`{"ingredients": ["tomato"], "palette": "savory"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, stub.paletteCmd)
		assert.Contains(t, rec.Body.String(), "palette must be a list")
	})

	t.Run("MissingListsRejected", func(t *testing.T) {
		stub := &stubRecommender{}
		h := NewRecommendHandlers(stub, logger.NewNop())

		rec := postJSON(t, h.RecommendByPalette, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestResetPaletteHistory(t *testing.T) {
	stub := &stubRecommender{}
	h := NewRecommendHandlers(stub, logger.NewNop())

	rec := postJSON(t, h.ResetPaletteHistory, ``)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.resetCalled)
}
