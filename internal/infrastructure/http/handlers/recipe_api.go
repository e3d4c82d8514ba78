package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tasteai/v2/internal/infrastructure/http/middleware"
	"github.com/tasteai/v2/internal/ports/inbound"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// RecipeHandlers handles user-authored recipe requests. All endpoints
// require authentication and operate on the caller's own recipes.
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		validate:      validator.New(),
		logger:        logger,
	}
}

type createRecipeRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=300"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

type updateRecipeRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Ingredients *[]string `json:"ingredients,omitempty"`
}

// ListRecipes handles GET /api/v2/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("authentication required"))
		return
	}

	recipes, err := h.recipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipes,
	})
}

// CreateRecipe handles POST /api/v2/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req createRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	dto, err := h.recipeService.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		AuthorID:    userID,
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Recipe created successfully",
	})
}

// GetRecipe handles GET /api/v2/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("authentication required"))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("invalid recipe id"))
		return
	}

	dto, err := h.recipeService.GetRecipe(r.Context(), recipeID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    dto,
	})
}

// UpdateRecipe handles PUT /api/v2/recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("authentication required"))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("invalid recipe id"))
		return
	}

	var req updateRecipeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	dto, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:    recipeID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    dto,
		Message: "Recipe updated successfully",
	})
}

// DeleteRecipe handles DELETE /api/v2/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorizedError("authentication required"))
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequestError("invalid recipe id"))
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe deleted successfully",
	})
}
