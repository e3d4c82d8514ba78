package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// RecommendHandlers exposes the recommendation engines over HTTP
type RecommendHandlers struct {
	recommender inbound.RecommendationService
	logger      *zap.Logger
}

// NewRecommendHandlers creates a new recommendation handlers instance
func NewRecommendHandlers(recommender inbound.RecommendationService, logger *zap.Logger) *RecommendHandlers {
	return &RecommendHandlers{
		recommender: recommender,
		logger:      logger,
	}
}

// nutrientRequest mirrors the calorie engine query. Raw list fields are
// validated for shape before decoding so a scalar where a list belongs
// produces a clear client error instead of a generic decode failure.
type nutrientRequest struct {
	Calories      float64         `json:"calories"`
	Fat           float64         `json:"fat"`
	Carbohydrates float64         `json:"carbohydrates"`
	Protein       float64         `json:"protein"`
	Cholesterol   float64         `json:"cholesterol"`
	Sodium        float64         `json:"sodium"`
	Fiber         float64         `json:"fiber"`
	Ingredients   json.RawMessage `json:"ingredients"`
}

type paletteRequest struct {
	Ingredients json.RawMessage `json:"ingredients"`
	Palette     json.RawMessage `json:"palette"`
	TopK        int             `json:"top_k"`
}

// decodeStringList enforces that a JSON field is a list of strings
func decodeStringList(raw json.RawMessage, field string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.NewBadRequestError(field + " must be a list")
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.NewBadRequestError(field + " must be a list")
	}
	return out, nil
}

// RecommendByNutrients handles POST /api/v2/recommendations/nutrients.
// Missing numeric fields default to zero.
func (h *RecommendHandlers) RecommendByNutrients(w http.ResponseWriter, r *http.Request) {
	var req nutrientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ingredients, err := decodeStringList(req.Ingredients, "ingredients")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results, err := h.recommender.RecommendByNutrients(r.Context(), inbound.NutrientRecommendationCommand{
		Calories:    req.Calories,
		Fat:         req.Fat,
		Carbs:       req.Carbohydrates,
		Protein:     req.Protein,
		Cholesterol: req.Cholesterol,
		Sodium:      req.Sodium,
		Fiber:       req.Fiber,
		Ingredients: ingredients,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    results,
	})
}

// RecommendByPalette handles POST /api/v2/recommendations/palette.
// Recipes already returned by earlier calls are excluded until the
// history is reset.
func (h *RecommendHandlers) RecommendByPalette(w http.ResponseWriter, r *http.Request) {
	var req paletteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	ingredients, err := decodeStringList(req.Ingredients, "ingredients")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	palette, err := decodeStringList(req.Palette, "palette")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	results, err := h.recommender.RecommendByPalette(r.Context(), inbound.PaletteRecommendationCommand{
		Ingredients: ingredients,
		Palette:     palette,
		TopK:        req.TopK,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    results,
	})
}

// ResetPaletteHistory handles POST /api/v2/recommendations/palette/reset
func (h *RecommendHandlers) ResetPaletteHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.recommender.ResetPaletteHistory(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Palette history cleared",
	})
}
